package nfa

import (
	"sort"

	"github.com/coregx/mindfa/automaton"
	"github.com/coregx/mindfa/internal/sparse"
)

// EpsilonClosure returns the states reachable from the given states using
// only epsilon transitions, the given states included, in ascending order.
// Unregistered states are ignored.
//
// The closure is the least fixpoint containing the seed. It is computed
// iteratively: the visited set's dense slice is also the worklist, and a
// state is enqueued only on first insertion, so epsilon cycles terminate.
func (n *NFA) EpsilonClosure(states ...StateID) []StateID {
	return n.closure(sparse.New(int(n.NextID())), states)
}

// closure computes the epsilon closure into seen, which is cleared first.
func (n *NFA) closure(seen *sparse.Set, states []StateID) []StateID {
	seen.Clear()
	for _, id := range states {
		if n.HasState(id) {
			seen.Insert(id)
		}
	}
	for i := 0; i < seen.Len(); i++ {
		for _, to := range n.trans[seen.At(i)][Epsilon] {
			seen.Insert(to)
		}
	}
	return seen.Sorted()
}

// Move returns the states reachable from the given states by consuming sym,
// without closing over epsilon, in ascending order.
func (n *NFA) Move(states []StateID, sym automaton.Symbol) []StateID {
	if sym == Epsilon {
		return nil
	}
	var out []StateID
	for _, id := range states {
		out = append(out, n.trans[id][sym]...)
	}
	if len(out) < 2 {
		return out
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	uniq := out[:1]
	for _, id := range out[1:] {
		if id != uniq[len(uniq)-1] {
			uniq = append(uniq, id)
		}
	}
	return uniq
}

// ContainsFinal reports whether any of the states is final.
func (n *NFA) ContainsFinal(states []StateID) bool {
	for _, id := range states {
		if n.IsFinal(id) {
			return true
		}
	}
	return false
}

// Accepts simulates the automaton on word by tracking the set of active
// states. It is the reference semantics the determinized automaton must
// agree with.
func (n *NFA) Accepts(word string) bool {
	if !n.HasState(n.InitialState()) {
		return false
	}
	seen := sparse.New(int(n.NextID()))
	current := n.closure(seen, []StateID{n.InitialState()})
	for _, c := range word {
		current = n.closure(seen, n.Move(current, c))
		if len(current) == 0 {
			return false
		}
	}
	return n.ContainsFinal(current)
}
