package dfa

import (
	"sort"

	"github.com/coregx/mindfa/automaton"
)

// dead marks a missing transition in the matcher tables.
const dead int32 = -1

// asciiWidth is the number of columns of the dense ASCII table.
const asciiWidth = 128

// Matcher is an immutable, compact form of a DFA used for scanning words.
//
// Every state owns a row of transitions sorted by symbol, searched by
// binary search. When the whole alphabet is ASCII the matcher also carries a
// dense table with one column per ASCII byte, so ASCII words are scanned
// with one array load per byte.
//
// A Matcher is safe for concurrent use.
type Matcher struct {
	start int32
	final []bool
	rows  [][]Transition
	ascii []int32 // len(final)*asciiWidth entries, nil without an ASCII alphabet

	alphabet automaton.Alphabet
}

// NewMatcher builds a matcher for d. d is not modified; a non-normalized
// automaton is normalized on a copy first.
func NewMatcher(d *DFA) (*Matcher, error) {
	if !d.HasState(d.InitialState()) {
		return nil, ErrNoInitialState
	}
	if !d.IsNormalized() {
		d = d.Clone()
		d.NormalizeStates()
	}

	n := d.NumStates()
	m := &Matcher{
		start:    int32(d.InitialState()),
		final:    make([]bool, n),
		rows:     make([][]Transition, n),
		alphabet: d.Alphabet().Clone(),
	}
	for _, id := range d.States() {
		m.final[id] = d.IsFinal(id)
		m.rows[id] = d.Transitions(id)
	}

	if m.alphabet.IsASCII() {
		m.ascii = make([]int32, n*asciiWidth)
		for i := range m.ascii {
			m.ascii[i] = dead
		}
		for id, row := range m.rows {
			for _, e := range row {
				m.ascii[id*asciiWidth+int(e.Symbol)] = int32(e.Next)
			}
		}
	}
	return m, nil
}

// Match reports whether the whole word is accepted.
// A symbol without a transition rejects immediately.
func (m *Matcher) Match(word string) bool {
	state := m.start
	for _, c := range word {
		state = m.next(state, c)
		if state == dead {
			return false
		}
	}
	return m.final[state]
}

// MatchASCII is Match for words known to contain only ASCII bytes.
// It falls back to Match when the matcher has no ASCII table.
func (m *Matcher) MatchASCII(word string) bool {
	if m.ascii == nil {
		return m.Match(word)
	}
	state := m.start
	for i := 0; i < len(word); i++ {
		b := word[i]
		if b >= asciiWidth {
			return m.Match(word)
		}
		state = m.ascii[int(state)*asciiWidth+int(b)]
		if state == dead {
			return false
		}
	}
	return m.final[state]
}

// HasASCIITable reports whether MatchASCII uses the dense table.
func (m *Matcher) HasASCIITable() bool {
	return m.ascii != nil
}

// WithoutASCIITable returns a copy of m whose MatchASCII always uses the
// row search.
func (m *Matcher) WithoutASCIITable() *Matcher {
	c := *m
	c.ascii = nil
	return &c
}

// States returns the number of states.
func (m *Matcher) States() int {
	return len(m.final)
}

// Alphabet returns the symbols of the automaton in ascending order.
func (m *Matcher) Alphabet() []automaton.Symbol {
	return m.alphabet.Symbols()
}

func (m *Matcher) next(state int32, c rune) int32 {
	row := m.rows[state]
	i := sort.Search(len(row), func(i int) bool { return row[i].Symbol >= c })
	if i < len(row) && row[i].Symbol == c {
		return int32(row[i].Next)
	}
	return dead
}
