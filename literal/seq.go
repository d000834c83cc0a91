// Package literal computes the finite language of a regular expression as an
// explicit set of words.
//
// Many patterns used in practice denote a small finite set of words
// (keyword alternations such as "if|else|for"). For those the match engine
// can answer membership with a multi-pattern string search instead of
// walking the automaton; see meta.Engine.
//
// Key concepts:
//   - A Literal is one word of the language, as UTF-8 bytes
//   - A Seq is a set of alternative literals
//   - Extract walks the syntax tree and returns the Seq, or reports that the
//     language is infinite or larger than the configured limits
package literal

import (
	"bytes"
	"sort"
)

// Literal is a single word of a finite language, encoded as UTF-8.
type Literal struct {
	Bytes []byte
}

// NewLiteral creates a Literal from b.
//
// Example:
//
//	lit := literal.NewLiteral([]byte("hello"))
//	fmt.Println(lit.Len()) // Output: 5
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// IsEmpty reports whether the literal is the empty word.
func (l Literal) IsEmpty() bool {
	return len(l.Bytes) == 0
}

// String returns a string representation of the literal for debugging.
// Format: "literal{bytes}"
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of distinct literals.
//
// The zero Seq, and a nil *Seq, denote the empty language.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo")),
//	    literal.NewLiteral([]byte("bar")),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
	index    map[string]struct{}
}

// NewSeq creates a sequence from lits. Duplicates are dropped; the first
// occurrence keeps its position.
func NewSeq(lits ...Literal) *Seq {
	s := &Seq{}
	for _, lit := range lits {
		s.Add(lit)
	}
	return s
}

// Add inserts lit unless an equal literal is already present.
// Returns true if lit was inserted.
func (s *Seq) Add(lit Literal) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	key := string(lit.Bytes)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.literals = append(s.literals, lit)
	return true
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals, that is, it denotes
// the empty language.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Contains reports whether word is one of the literals.
func (s *Seq) Contains(word []byte) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[string(word)]
	return ok
}

// ContainsEmpty reports whether the empty word is one of the literals.
func (s *Seq) ContainsEmpty() bool {
	return s.Contains(nil)
}

// MaxLen returns the length in bytes of the longest literal, or 0 for an
// empty sequence.
func (s *Seq) MaxLen() int {
	longest := 0
	for i := 0; i < s.Len(); i++ {
		if n := s.literals[i].Len(); n > longest {
			longest = n
		}
	}
	return longest
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	clone := &Seq{}
	for _, lit := range s.literals {
		b := make([]byte, len(lit.Bytes))
		copy(b, lit.Bytes)
		clone.Add(Literal{Bytes: b})
	}
	return clone
}

// SortLongestFirst orders the literals by decreasing length, breaking ties
// lexicographically. This is the insertion order used for multi-pattern
// search, where a longer literal must win over its own prefixes.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("a")),
//	    literal.NewLiteral([]byte("abc")),
//	    literal.NewLiteral([]byte("ab")),
//	)
//	seq.SortLongestFirst()
//	// seq is now ["abc", "ab", "a"]
func (s *Seq) SortLongestFirst() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return bytes.Compare(a, b) < 0
	})
}

// Strings returns the literals as strings, in sequence order.
func (s *Seq) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = string(s.literals[i].Bytes)
	}
	return out
}

// union returns the set union of s and other, or false if the result would
// exceed limit literals.
func (s *Seq) union(other *Seq, limit int) (*Seq, bool) {
	out := s.Clone()
	if out == nil {
		out = NewSeq()
	}
	for i := 0; i < other.Len(); i++ {
		out.Add(other.Get(i))
		if out.Len() > limit {
			return nil, false
		}
	}
	return out, true
}

// cross returns the set of every literal of s followed by every literal of
// other, or false if the result would exceed either limit.
func (s *Seq) cross(other *Seq, limit, maxLen int) (*Seq, bool) {
	out := NewSeq()
	for i := 0; i < s.Len(); i++ {
		left := s.Get(i).Bytes
		for j := 0; j < other.Len(); j++ {
			right := other.Get(j).Bytes
			if len(left)+len(right) > maxLen {
				return nil, false
			}
			b := make([]byte, 0, len(left)+len(right))
			b = append(b, left...)
			b = append(b, right...)
			out.Add(Literal{Bytes: b})
			if out.Len() > limit {
				return nil, false
			}
		}
	}
	return out, true
}
