package dfa

import (
	"hash/fnv"

	"github.com/coregx/mindfa/automaton"
	"github.com/coregx/mindfa/nfa"
)

// Determinize converts n into an equivalent DFA by subset construction.
//
// Each DFA state stands for an epsilon-closed set of NFA states. The initial
// state is the closure of the NFA's initial state. States are discovered in
// worklist order: for every pending set Q and every alphabet symbol a, the
// successor is closure(move(Q, a)); unseen successors are appended to the
// worklist. A DFA state is final iff its set contains an NFA final state.
//
// The empty set reached on a symbol is kept as an ordinary non-final sink
// state, so the result is total over its alphabet. Termination follows from
// the finite power set of NFA states, but that bound is exponential: use
// Config.MaxStates to cap growth for untrusted patterns.
//
// The result is normalized: states are 0..n-1 with the initial state at 0.
func Determinize(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !n.HasState(n.InitialState()) {
		return nil, ErrNoInitialState
	}

	symbols := n.Alphabet().Symbols()
	d := New()
	d.Alphabet().Merge(n.Alphabet())

	index := newSubsetIndex()
	start := n.EpsilonClosure(n.InitialState())
	discovered := [][]nfa.StateID{start}
	index.insert(start, 0)
	if err := d.AddState(0, n.ContainsFinal(start)); err != nil {
		return nil, err
	}
	if err := d.MarkInitialState(0); err != nil {
		return nil, err
	}

	for i := 0; i < len(discovered); i++ {
		from := automaton.StateIDFromInt(i)
		for _, sym := range symbols {
			next := n.EpsilonClosure(n.Move(discovered[i], sym)...)
			to, ok := index.lookup(discovered, next)
			if !ok {
				if config.MaxStates > 0 && len(discovered) >= config.MaxStates {
					return nil, ErrStateLimitExceeded
				}
				to = automaton.StateIDFromInt(len(discovered))
				discovered = append(discovered, next)
				index.insert(next, to)
				if err := d.AddState(to, n.ContainsFinal(next)); err != nil {
					return nil, err
				}
			}
			if err := d.AddTransition(from, to, sym); err != nil {
				return nil, err
			}
		}
	}

	d.NormalizeStates()
	return d, nil
}

// subsetIndex maps sorted NFA state sets to the DFA state standing for them.
// Sets are hashed with FNV-1a; each bucket keeps the DFA ids whose sets share
// the hash and lookups compare the sets themselves.
type subsetIndex struct {
	buckets map[uint64][]StateID
}

func newSubsetIndex() *subsetIndex {
	return &subsetIndex{buckets: make(map[uint64][]StateID)}
}

func (x *subsetIndex) insert(set []nfa.StateID, id StateID) {
	h := hashSet(set)
	x.buckets[h] = append(x.buckets[h], id)
}

func (x *subsetIndex) lookup(discovered [][]nfa.StateID, set []nfa.StateID) (StateID, bool) {
	for _, id := range x.buckets[hashSet(set)] {
		if equalSets(discovered[id], set) {
			return id, true
		}
	}
	return automaton.InvalidState, false
}

// hashSet hashes a sorted set of NFA state ids.
func hashSet(set []nfa.StateID) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 4*len(set))
	for _, sid := range set {
		buf = append(buf, byte(sid), byte(sid>>8), byte(sid>>16), byte(sid>>24))
	}
	// hash.Hash.Write never returns an error per documentation
	_, _ = h.Write(buf)
	return h.Sum64()
}

func equalSets(a, b []nfa.StateID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
