// Package dfa provides the deterministic automaton, its construction from an
// NFA by subset construction, Moore minimization and a compact matcher.
//
// A DFA maps (state, symbol) to at most one destination. The transition
// function may be partial: a missing entry is an implicit transition to a
// non-accepting reject state.
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/mindfa/automaton"
)

// StateID is the state identifier type shared by all automata.
type StateID = automaton.StateID

// Transition is one outgoing edge of a DFA state.
type Transition struct {
	Symbol automaton.Symbol
	Next   StateID
}

// DFA is a deterministic finite automaton.
// The embedded Core supplies AddState, MarkInitialState, the final set and
// the alphabet.
type DFA struct {
	automaton.Core

	trans map[StateID]map[automaton.Symbol]StateID
}

// New creates an empty DFA.
func New() *DFA {
	return &DFA{
		Core:  automaton.NewCore(),
		trans: make(map[StateID]map[automaton.Symbol]StateID),
	}
}

// AddTransition sets the transition from -> to on sym and adds sym to the
// alphabet. Adding the same transition twice is a no-op; adding a different
// target for an existing (from, sym) pair fails with ErrNondeterministic.
func (d *DFA) AddTransition(from, to StateID, sym automaton.Symbol) error {
	if sym == automaton.Epsilon {
		return &DFAError{Kind: EpsilonTransition, Message: "epsilon transition in DFA",
			Cause: fmt.Errorf("state %d", from)}
	}
	if err := d.CheckEndpoints(from, to); err != nil {
		return err
	}
	row := d.trans[from]
	if row == nil {
		row = make(map[automaton.Symbol]StateID)
		d.trans[from] = row
	}
	if prev, ok := row[sym]; ok && prev != to {
		return &DFAError{Kind: Nondeterministic, Message: "conflicting transition",
			Cause: fmt.Errorf("state %d on %q: %d and %d", from, sym, prev, to)}
	}
	row[sym] = to
	d.AddSymbol(sym)
	return nil
}

// Transition returns the destination of from on sym.
// Returns (InvalidState, false) if no transition exists.
func (d *DFA) Transition(from StateID, sym automaton.Symbol) (StateID, bool) {
	next, ok := d.trans[from][sym]
	if !ok {
		return automaton.InvalidState, false
	}
	return next, true
}

// Transitions returns the edges leaving from, sorted by symbol.
func (d *DFA) Transitions(from StateID) []Transition {
	row := d.trans[from]
	out := make([]Transition, 0, len(row))
	for sym, next := range row {
		out = append(out, Transition{Symbol: sym, Next: next})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// NumTransitions returns the number of defined (state, symbol) pairs.
func (d *DFA) NumTransitions() int {
	count := 0
	for _, row := range d.trans {
		count += len(row)
	}
	return count
}

// IsComplete reports whether every state has a transition on every
// alphabet symbol.
func (d *DFA) IsComplete() bool {
	for _, id := range d.States() {
		if len(d.trans[id]) != d.Alphabet().Len() {
			return false
		}
	}
	return true
}

// Accepts runs the automaton over word. A missing transition rejects.
func (d *DFA) Accepts(word string) bool {
	state := d.InitialState()
	if !d.HasState(state) {
		return false
	}
	for _, c := range word {
		next, ok := d.trans[state][c]
		if !ok {
			return false
		}
		state = next
	}
	return d.IsFinal(state)
}

// RenameState substitutes oldID with newID in the state set, the final set,
// the initial marker, transition sources and transition targets.
func (d *DFA) RenameState(oldID, newID StateID) error {
	if err := d.RenameCore(oldID, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if row, ok := d.trans[oldID]; ok {
		d.trans[newID] = row
		delete(d.trans, oldID)
	}
	for _, row := range d.trans {
		for sym, next := range row {
			if next == oldID {
				row[sym] = newID
			}
		}
	}
	return nil
}

// NormalizeStates renumbers the states to 0..n-1: the initial state first,
// then breadth-first over sorted symbols, then unreachable states in
// ascending order.
func (d *DFA) NormalizeStates() {
	mapping := d.CanonicalOrder(func(id StateID) []StateID {
		edges := d.Transitions(id)
		out := make([]StateID, len(edges))
		for i, e := range edges {
			out[i] = e.Next
		}
		return out
	})

	trans := make(map[StateID]map[automaton.Symbol]StateID, len(d.trans))
	for from, row := range d.trans {
		newRow := make(map[automaton.Symbol]StateID, len(row))
		for sym, to := range row {
			newRow[sym] = mapping[to]
		}
		trans[mapping[from]] = newRow
	}
	d.trans = trans
	d.Remap(mapping)
}

// IsNormalized reports whether the states are exactly 0..n-1 with the
// initial state at 0.
func (d *DFA) IsNormalized() bool {
	if d.NumStates() > 0 && d.InitialState() != 0 {
		return false
	}
	return d.NextID() == automaton.StateIDFromInt(d.NumStates())
}

// Clone returns a deep copy of the automaton.
func (d *DFA) Clone() *DFA {
	clone := &DFA{
		Core:  d.Core.Clone(),
		trans: make(map[StateID]map[automaton.Symbol]StateID, len(d.trans)),
	}
	for from, row := range d.trans {
		newRow := make(map[automaton.Symbol]StateID, len(row))
		for sym, to := range row {
			newRow[sym] = to
		}
		clone.trans[from] = newRow
	}
	return clone
}

// String renders the automaton one state per line, for debugging.
func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DFA{%s}\n", d.Core.String())
	for _, id := range d.States() {
		fmt.Fprintf(&sb, "state %d", id)
		if d.IsFinal(id) {
			sb.WriteString(" (final)")
		}
		sb.WriteByte('\n')
		for _, e := range d.Transitions(id) {
			fmt.Fprintf(&sb, "  %c -> %d\n", e.Symbol, e.Next)
		}
	}
	return sb.String()
}
