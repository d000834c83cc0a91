// Package automaton provides the state model shared by the nondeterministic
// and deterministic automata of the engine.
//
// Both automaton kinds keep a set of states, a designated initial state, a
// set of final states and an alphabet. They differ only in the shape of the
// transition relation, which each kind stores itself (see packages nfa and
// dfa). Core holds the common part and the canonical renumbering logic used
// by NormalizeStates on both kinds.
package automaton

import (
	"fmt"
	"math"
	"sort"
)

// StateID identifies a state inside one automaton.
// Identifiers are only meaningful within the automaton that issued them.
type StateID uint32

// InvalidState represents an unset state (for example, no initial state yet).
const InvalidState StateID = 0xFFFFFFFF

// Symbol is a single input character.
type Symbol = rune

// Epsilon marks a transition that consumes no input.
// It is never a member of an Alphabet.
const Epsilon Symbol = -1

// StateIDFromInt converts an index to a StateID.
// Panics if n does not fit, which indicates an automaton too large to address.
func StateIDFromInt(n int) StateID {
	if n < 0 || uint(n) >= math.MaxUint32 {
		panic("automaton: state index out of range")
	}
	return StateID(n)
}

// Core is the state bookkeeping shared by both automaton kinds.
// The zero value is not usable; create one with NewCore.
type Core struct {
	states   map[StateID]bool // id -> final
	initial  StateID
	alphabet Alphabet
	maxID    StateID
}

// NewCore creates an empty Core with no states and no initial state.
func NewCore() Core {
	return Core{
		states:  make(map[StateID]bool),
		initial: InvalidState,
		maxID:   InvalidState,
	}
}

// AddState registers a new state.
// Returns ErrDuplicateState if id is already registered.
func (c *Core) AddState(id StateID, final bool) error {
	if id == InvalidState {
		return &StateError{Op: "add state", State: id, Err: ErrUnknownState}
	}
	if _, ok := c.states[id]; ok {
		return &StateError{Op: "add state", State: id, Err: ErrDuplicateState}
	}
	c.states[id] = final
	if c.maxID == InvalidState || id > c.maxID {
		c.maxID = id
	}
	return nil
}

// MarkInitialState sets the initial state.
// Returns ErrUnknownState if id is not registered.
func (c *Core) MarkInitialState(id StateID) error {
	if !c.HasState(id) {
		return &StateError{Op: "mark initial state", State: id, Err: ErrUnknownState}
	}
	c.initial = id
	return nil
}

// SetFinal changes the final designation of a registered state.
func (c *Core) SetFinal(id StateID, final bool) error {
	if !c.HasState(id) {
		return &StateError{Op: "set final", State: id, Err: ErrUnknownState}
	}
	c.states[id] = final
	return nil
}

// HasState reports whether id is registered.
func (c *Core) HasState(id StateID) bool {
	_, ok := c.states[id]
	return ok
}

// IsFinal reports whether id is a registered final state.
func (c *Core) IsFinal(id StateID) bool {
	return c.states[id]
}

// InitialState returns the initial state, or InvalidState if none was marked.
func (c *Core) InitialState() StateID {
	return c.initial
}

// NumStates returns the number of registered states.
func (c *Core) NumStates() int {
	return len(c.states)
}

// NextID returns an identifier greater than every registered one.
// It is the base offset used when copying another automaton's states in.
func (c *Core) NextID() StateID {
	if c.maxID == InvalidState {
		return 0
	}
	return c.maxID + 1
}

// States returns all registered states in ascending order.
func (c *Core) States() []StateID {
	ids := make([]StateID, 0, len(c.states))
	for id := range c.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FinalStates returns the final states in ascending order.
func (c *Core) FinalStates() []StateID {
	var ids []StateID
	for id, final := range c.states {
		if final {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Alphabet returns the automaton's alphabet.
func (c *Core) Alphabet() *Alphabet {
	return &c.alphabet
}

// AddSymbol adds a non-epsilon symbol to the alphabet.
func (c *Core) AddSymbol(sym Symbol) {
	if sym != Epsilon {
		c.alphabet.Add(sym)
	}
}

// CheckEndpoints validates that both ends of a transition are registered.
func (c *Core) CheckEndpoints(from, to StateID) error {
	if !c.HasState(from) {
		return &StateError{Op: "add transition", State: from, Err: ErrUnknownState}
	}
	if !c.HasState(to) {
		return &StateError{Op: "add transition", State: to, Err: ErrUnknownState}
	}
	return nil
}

// RenameCore substitutes oldID with newID in the state set, the final set and the
// initial marker. Transition tables are the caller's responsibility.
func (c *Core) RenameCore(oldID, newID StateID) error {
	if !c.HasState(oldID) {
		return &StateError{Op: "rename state", State: oldID, Err: ErrUnknownState}
	}
	if oldID == newID {
		return nil
	}
	if newID == InvalidState {
		return &StateError{Op: "rename state", State: newID, Err: ErrUnknownState}
	}
	if c.HasState(newID) {
		return &StateError{Op: "rename state", State: newID, Err: ErrDuplicateState}
	}
	c.states[newID] = c.states[oldID]
	delete(c.states, oldID)
	if c.initial == oldID {
		c.initial = newID
	}
	c.recomputeMax()
	return nil
}

func (c *Core) recomputeMax() {
	c.maxID = InvalidState
	for id := range c.states {
		if c.maxID == InvalidState || id > c.maxID {
			c.maxID = id
		}
	}
}

// CanonicalOrder computes the renumbering used by NormalizeStates.
//
// The initial state maps to 0. Other states are numbered in breadth-first
// discovery order, visiting the successors that succ returns in the order
// given. States not reachable from the initial state follow in ascending id.
func (c *Core) CanonicalOrder(succ func(StateID) []StateID) map[StateID]StateID {
	mapping := make(map[StateID]StateID, len(c.states))
	next := StateID(0)
	assign := func(id StateID) bool {
		if _, seen := mapping[id]; seen {
			return false
		}
		mapping[id] = next
		next++
		return true
	}

	if c.HasState(c.initial) {
		queue := []StateID{c.initial}
		assign(c.initial)
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, to := range succ(id) {
				if assign(to) {
					queue = append(queue, to)
				}
			}
		}
	}
	for _, id := range c.States() {
		assign(id)
	}
	return mapping
}

// Remap rebuilds the core under mapping, which must be a bijection onto
// 0..n-1 covering every registered state.
func (c *Core) Remap(mapping map[StateID]StateID) {
	states := make(map[StateID]bool, len(c.states))
	for id, final := range c.states {
		states[mapping[id]] = final
	}
	c.states = states
	if c.initial != InvalidState {
		c.initial = mapping[c.initial]
	}
	c.recomputeMax()
}

// Clone returns a deep copy of the core.
func (c *Core) Clone() Core {
	clone := Core{
		states:   make(map[StateID]bool, len(c.states)),
		initial:  c.initial,
		alphabet: c.alphabet.Clone(),
		maxID:    c.maxID,
	}
	for id, final := range c.states {
		clone.states[id] = final
	}
	return clone
}

// String returns a short summary of the core.
func (c *Core) String() string {
	return fmt.Sprintf("states: %d, initial: %d, final: %v, alphabet: %s",
		len(c.states), c.initial, c.FinalStates(), c.alphabet.String())
}
