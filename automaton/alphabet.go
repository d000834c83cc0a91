package automaton

import (
	"sort"
	"strings"
)

// Alphabet is an ordered set of input symbols.
// Symbols are kept sorted so that every algorithm iterating the alphabet
// sees the same order. Epsilon is never stored.
type Alphabet struct {
	symbols []Symbol
}

// NewAlphabet creates an alphabet holding the given symbols.
func NewAlphabet(symbols ...Symbol) Alphabet {
	var a Alphabet
	for _, s := range symbols {
		a.Add(s)
	}
	return a
}

// Add inserts sym, keeping the set sorted. Epsilon is ignored.
func (a *Alphabet) Add(sym Symbol) {
	if sym == Epsilon {
		return
	}
	i := sort.Search(len(a.symbols), func(i int) bool { return a.symbols[i] >= sym })
	if i < len(a.symbols) && a.symbols[i] == sym {
		return
	}
	a.symbols = append(a.symbols, 0)
	copy(a.symbols[i+1:], a.symbols[i:])
	a.symbols[i] = sym
}

// Merge adds every symbol of other.
func (a *Alphabet) Merge(other *Alphabet) {
	for _, s := range other.symbols {
		a.Add(s)
	}
}

// Contains reports whether sym is a member.
func (a *Alphabet) Contains(sym Symbol) bool {
	return a.Index(sym) >= 0
}

// Index returns the position of sym in sorted order, or -1.
func (a *Alphabet) Index(sym Symbol) int {
	i := sort.Search(len(a.symbols), func(i int) bool { return a.symbols[i] >= sym })
	if i < len(a.symbols) && a.symbols[i] == sym {
		return i
	}
	return -1
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns a copy of the symbols in ascending order.
func (a *Alphabet) Symbols() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// IsASCII reports whether every symbol is in [0, 0x80).
func (a *Alphabet) IsASCII() bool {
	if len(a.symbols) == 0 {
		return true
	}
	return a.symbols[0] >= 0 && a.symbols[len(a.symbols)-1] < 0x80
}

// Clone returns an independent copy.
func (a *Alphabet) Clone() Alphabet {
	return Alphabet{symbols: a.Symbols()}
}

// String renders the alphabet as {a,b,c}.
func (a *Alphabet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, s := range a.symbols {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(s)
	}
	sb.WriteByte('}')
	return sb.String()
}
