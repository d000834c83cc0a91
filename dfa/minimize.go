package dfa

import (
	"encoding/binary"

	"github.com/coregx/mindfa/automaton"
)

// noTransition is the class assigned to a missing transition when building
// signatures. Real class ids are never negative.
const noTransition = -1

// Minimize collapses equivalent states of d by Moore's partition refinement.
//
// Round 0 puts final states in class 1 and the rest in class 0. Round i
// gives each state the signature (class of the state, class of its target
// on each alphabet symbol in sorted order) over round i-1 classes; equal
// signatures share a class, numbered in first-seen order. A missing
// transition contributes the noTransition sentinel, so partial automata are
// handled. Refinement stops when a round produces no new class, which takes
// at most |states| rounds because the class count never decreases and is
// bounded by the number of states.
//
// The result has one state per class, keeps d's alphabet and is normalized.
func Minimize(d *DFA) (*DFA, error) {
	if !d.HasState(d.InitialState()) {
		return nil, ErrNoInitialState
	}

	states := d.States()
	symbols := d.Alphabet().Symbols()

	class := make(map[StateID]int, len(states))
	for _, q := range states {
		if d.IsFinal(q) {
			class[q] = 1
		} else {
			class[q] = 0
		}
	}
	count := countClasses(class)

	sig := make([]byte, 0, binary.MaxVarintLen64*(len(symbols)+1))
	for {
		next := make(map[StateID]int, len(states))
		ids := make(map[string]int)
		for _, q := range states {
			sig = binary.AppendVarint(sig[:0], int64(class[q]))
			for _, sym := range symbols {
				target := noTransition
				if to, ok := d.Transition(q, sym); ok {
					target = class[to]
				}
				sig = binary.AppendVarint(sig, int64(target))
			}
			id, ok := ids[string(sig)]
			if !ok {
				id = len(ids)
				ids[string(sig)] = id
			}
			next[q] = id
		}
		class = next
		if len(ids) == count {
			break
		}
		count = len(ids)
	}

	return quotient(d, states, symbols, class)
}

// quotient builds the automaton whose states are the classes of d.
func quotient(d *DFA, states []StateID, symbols []automaton.Symbol, class map[StateID]int) (*DFA, error) {
	m := New()
	m.Alphabet().Merge(d.Alphabet())
	for _, q := range states {
		c := automaton.StateIDFromInt(class[q])
		if !m.HasState(c) {
			if err := m.AddState(c, d.IsFinal(q)); err != nil {
				return nil, err
			}
		}
	}
	if err := m.MarkInitialState(automaton.StateIDFromInt(class[d.InitialState()])); err != nil {
		return nil, err
	}
	for _, q := range states {
		from := automaton.StateIDFromInt(class[q])
		for _, sym := range symbols {
			to, ok := d.Transition(q, sym)
			if !ok {
				continue
			}
			// Equivalent states agree on target classes, so repeats are no-ops.
			if err := m.AddTransition(from, automaton.StateIDFromInt(class[to]), sym); err != nil {
				return nil, err
			}
		}
	}
	m.NormalizeStates()
	return m, nil
}

func countClasses(class map[StateID]int) int {
	seen := make(map[int]struct{}, 2)
	for _, c := range class {
		seen[c] = struct{}{}
	}
	return len(seen)
}
