// Package sparse provides a sparse set of automaton state ids.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping the members in a dense slice in insertion order. The epsilon
// closure fixpoint uses it as its visited set: the dense slice doubles as the
// worklist, so no separate stack is needed.
package sparse

import (
	"sort"

	"github.com/coregx/mindfa/automaton"
)

// Set is a set of state ids below a fixed capacity.
type Set struct {
	sparse []uint32            // id -> index in dense
	dense  []automaton.StateID // members in insertion order
}

// New creates a set able to hold ids in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]automaton.StateID, 0, capacity),
	}
}

// Insert adds id and reports whether it was not already present.
// Panics if id is outside the capacity.
func (s *Set) Insert(id automaton.StateID) bool {
	if s.Contains(id) {
		return false
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

// Contains reports whether id is a member.
func (s *Set) Contains(id automaton.StateID) bool {
	if uint64(id) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[id]
	return int(idx) < len(s.dense) && s.dense[idx] == id
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// At returns the i-th member in insertion order.
func (s *Set) At(i int) automaton.StateID {
	return s.dense[i]
}

// Sorted returns a sorted copy of the members.
func (s *Set) Sorted() []automaton.StateID {
	out := make([]automaton.StateID, len(s.dense))
	copy(out, s.dense)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
