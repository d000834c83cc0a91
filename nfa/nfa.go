// Package nfa provides the nondeterministic automaton with epsilon
// transitions and its Thompson construction from a regex syntax tree.
//
// An NFA maps (state, symbol-or-epsilon) to a set of destination states.
// Fragments built for sub-expressions are composed by copying their states
// under fresh ids into a new automaton, so no state is ever shared between
// two automata. Every composition step ends with NormalizeStates, which
// renumbers the states densely from 0.
package nfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/mindfa/automaton"
)

// StateID is the state identifier type shared by all automata.
type StateID = automaton.StateID

// InvalidState represents an invalid/uninitialized state ID
const InvalidState = automaton.InvalidState

// Epsilon labels transitions that consume no input.
const Epsilon = automaton.Epsilon

// NFA is a nondeterministic finite automaton with epsilon transitions.
//
// The embedded Core supplies AddState, MarkInitialState, the final set and
// the alphabet. Destination sets are kept sorted and free of duplicates.
type NFA struct {
	automaton.Core

	trans map[StateID]map[automaton.Symbol][]StateID
}

// New creates an empty NFA.
func New() *NFA {
	return &NFA{
		Core:  automaton.NewCore(),
		trans: make(map[StateID]map[automaton.Symbol][]StateID),
	}
}

// AddTransition adds an edge from -> to labeled sym (or Epsilon).
// Non-epsilon symbols join the alphabet. Adding an existing edge is a no-op.
// Returns ErrUnknownState if either endpoint is not registered.
func (n *NFA) AddTransition(from, to StateID, sym automaton.Symbol) error {
	if err := n.CheckEndpoints(from, to); err != nil {
		return err
	}
	row := n.trans[from]
	if row == nil {
		row = make(map[automaton.Symbol][]StateID)
		n.trans[from] = row
	}
	row[sym] = insertSorted(row[sym], to)
	n.AddSymbol(sym)
	return nil
}

// Targets returns the destinations of from on sym, sorted.
// The returned slice must not be modified.
func (n *NFA) Targets(from StateID, sym automaton.Symbol) []StateID {
	return n.trans[from][sym]
}

// Symbols returns the labels leaving from, sorted. Epsilon sorts first.
func (n *NFA) Symbols(from StateID) []automaton.Symbol {
	row := n.trans[from]
	syms := make([]automaton.Symbol, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// NumTransitions returns the number of (from, symbol, to) edges.
func (n *NFA) NumTransitions() int {
	count := 0
	for _, row := range n.trans {
		for _, dst := range row {
			count += len(dst)
		}
	}
	return count
}

// RenameState substitutes oldID with newID everywhere it appears: the state
// set, the final set, the initial marker, transition sources and every
// destination set.
func (n *NFA) RenameState(oldID, newID StateID) error {
	if err := n.RenameCore(oldID, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if row, ok := n.trans[oldID]; ok {
		n.trans[newID] = row
		delete(n.trans, oldID)
	}
	for _, row := range n.trans {
		for sym, dst := range row {
			if i := indexSorted(dst, oldID); i >= 0 {
				dst = append(dst[:i], dst[i+1:]...)
				row[sym] = insertSorted(dst, newID)
			}
		}
	}
	return nil
}

// NormalizeStates renumbers the states to 0..n-1, the initial state first,
// then in breadth-first order over sorted labels. Initial and final
// designations and all transitions are preserved.
func (n *NFA) NormalizeStates() {
	mapping := n.CanonicalOrder(func(id StateID) []StateID {
		var out []StateID
		for _, sym := range n.Symbols(id) {
			out = append(out, n.trans[id][sym]...)
		}
		return out
	})

	trans := make(map[StateID]map[automaton.Symbol][]StateID, len(n.trans))
	for from, row := range n.trans {
		newRow := make(map[automaton.Symbol][]StateID, len(row))
		for sym, dst := range row {
			var mapped []StateID
			for _, to := range dst {
				mapped = insertSorted(mapped, mapping[to])
			}
			newRow[sym] = mapped
		}
		trans[mapping[from]] = newRow
	}
	n.trans = trans
	n.Remap(mapping)
}

// Clone returns a deep copy of the automaton.
func (n *NFA) Clone() *NFA {
	clone := &NFA{
		Core:  n.Core.Clone(),
		trans: make(map[StateID]map[automaton.Symbol][]StateID, len(n.trans)),
	}
	for from, row := range n.trans {
		newRow := make(map[automaton.Symbol][]StateID, len(row))
		for sym, dst := range row {
			newRow[sym] = append([]StateID(nil), dst...)
		}
		clone.trans[from] = newRow
	}
	return clone
}

// String renders the automaton one state per line, for debugging.
func (n *NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA{%s}\n", n.Core.String())
	for _, id := range n.States() {
		fmt.Fprintf(&sb, "state %d", id)
		if n.IsFinal(id) {
			sb.WriteString(" (final)")
		}
		sb.WriteByte('\n')
		for _, sym := range n.Symbols(id) {
			label := string(sym)
			if sym == Epsilon {
				label = "ε"
			}
			fmt.Fprintf(&sb, "  %s -> %v\n", label, n.trans[id][sym])
		}
	}
	return sb.String()
}

// insertSorted inserts id into the sorted slice if absent.
func insertSorted(ids []StateID, id StateID) []StateID {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return ids
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func indexSorted(ids []StateID, id StateID) int {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return i
	}
	return -1
}
