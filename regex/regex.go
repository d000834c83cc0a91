// Package regex defines the abstract syntax of regular expressions.
//
// The variant set is closed: Empty, Lambda, Char, Concat, Union, Star and
// Plus. Regex is a sealed interface, so consumers (the Thompson compiler in
// package nfa, literal extraction, the naive matcher) switch exhaustively
// over the concrete types.
//
// Every variant provides two independent semantics for the same structure:
//   - NaiveMatch, a slow structural matcher that tries every split of the
//     input. It is exponential and exists only as a test oracle.
//   - Translation into an automaton (see nfa.Compile), used for real
//     matching.
//
// String renders a canonical textual form that doubles as a cache key.
package regex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Regex is a node of the regular expression syntax tree.
// Nodes are immutable values; children are owned by their parent.
type Regex interface {
	// NaiveMatch reports whether the whole word belongs to the language,
	// by exhaustive trial splitting. Exponential; for testing only.
	NaiveMatch(word string) bool

	// String returns the canonical rendering.
	String() string

	atomic() bool
	naive(w []rune) bool
}

// Empty denotes the empty language. It matches nothing.
type Empty struct{}

// Lambda denotes the language holding only the empty string.
type Lambda struct{}

// Char denotes the language holding exactly the one-character string C.
type Char struct {
	C rune
}

// Concat denotes the concatenation of Left and Right.
type Concat struct {
	Left, Right Regex
}

// Union denotes the union of Left and Right.
type Union struct {
	Left, Right Regex
}

// Star denotes the Kleene closure of Sub.
type Star struct {
	Sub Regex
}

// Plus denotes one or more repetitions of Sub.
type Plus struct {
	Sub Regex
}

func (Empty) NaiveMatch(word string) bool    { return false }
func (Lambda) NaiveMatch(word string) bool   { return word == "" }
func (c Char) NaiveMatch(word string) bool   { return c.naive([]rune(word)) }
func (c Concat) NaiveMatch(word string) bool { return c.naive([]rune(word)) }
func (u Union) NaiveMatch(word string) bool  { return u.naive([]rune(word)) }
func (s Star) NaiveMatch(word string) bool   { return s.naive([]rune(word)) }
func (p Plus) NaiveMatch(word string) bool   { return p.naive([]rune(word)) }

func (Empty) naive(w []rune) bool  { return false }
func (Lambda) naive(w []rune) bool { return len(w) == 0 }

func (c Char) naive(w []rune) bool {
	return len(w) == 1 && w[0] == c.C
}

func (c Concat) naive(w []rune) bool {
	for i := 0; i <= len(w); i++ {
		if naive(c.Left, w[:i]) && naive(c.Right, w[i:]) {
			return true
		}
	}
	return false
}

func (u Union) naive(w []rune) bool {
	return naive(u.Left, w) || naive(u.Right, w)
}

func (s Star) naive(w []rune) bool {
	if len(w) == 0 || naive(s.Sub, w) {
		return true
	}
	// Prefixes are non-empty, so the recursion always shrinks w.
	for i := 1; i <= len(w); i++ {
		if naive(s.Sub, w[:i]) && s.naive(w[i:]) {
			return true
		}
	}
	return false
}

func (p Plus) naive(w []rune) bool {
	if naive(p.Sub, w) {
		return true
	}
	for i := 1; i <= len(w); i++ {
		if naive(p.Sub, w[:i]) && p.naive(w[i:]) {
			return true
		}
	}
	return false
}

// naive treats a nil child as the empty language.
func naive(re Regex, w []rune) bool {
	if re == nil {
		return false
	}
	return re.naive(w)
}

func (Empty) atomic() bool  { return true }
func (Lambda) atomic() bool { return true }
func (Char) atomic() bool   { return true }
func (Concat) atomic() bool { return false }
func (Union) atomic() bool  { return false }
func (Star) atomic() bool   { return false }
func (Plus) atomic() bool   { return false }

// Symbols used to render the two special languages.
const (
	EmptySymbol  = '∅'
	LambdaSymbol = 'λ'
)

// metaChars are escaped with a backslash when rendered as a Char, keeping the
// rendering unambiguous.
const metaChars = `\.+*?()|[]{}^$` + string(EmptySymbol) + string(LambdaSymbol)

func (Empty) String() string  { return string(EmptySymbol) }
func (Lambda) String() string { return string(LambdaSymbol) }

func (c Char) String() string {
	if !utf8.ValidRune(c.C) {
		// string(c.C) would collapse every invalid value to U+FFFD.
		return `\x{` + strconv.FormatInt(int64(c.C), 16) + "}"
	}
	if strings.ContainsRune(metaChars, c.C) {
		return `\` + string(c.C)
	}
	return string(c.C)
}

func (c Concat) String() string {
	return operand(c.Left) + operand(c.Right)
}

func (u Union) String() string {
	return operand(u.Left) + "|" + operand(u.Right)
}

func (s Star) String() string {
	return operand(s.Sub) + "*"
}

func (p Plus) String() string {
	return operand(p.Sub) + "+"
}

// operand renders a child, parenthesized unless it is atomic.
func operand(re Regex) string {
	if re == nil {
		return "<nil>"
	}
	if re.atomic() {
		return re.String()
	}
	return "(" + re.String() + ")"
}

// IsAtomic reports whether re renders without parentheses as an operand.
func IsAtomic(re Regex) bool {
	return re != nil && re.atomic()
}
