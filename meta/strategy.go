package meta

import (
	"github.com/coregx/mindfa/literal"
)

// Strategy represents the scan strategy chosen for a compiled pattern.
type Strategy int

const (
	// UseDFA walks the minimal DFA for every word.
	UseDFA Strategy = iota

	// UseLiteral checks the word against the finite language with an
	// Aho-Corasick automaton first and walks the minimal DFA only when
	// that check does not accept.
	// Selected for:
	//   - Patterns whose language is finite (no reachable Star/Plus over a
	//     non-empty language)
	//   - At most MaxLiterals words, each at most MaxLiteralLen bytes
	//   - EnableLiteralFastPath set in config
	UseLiteral
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case UseDFA:
		return "UseDFA"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the strategy for a pattern whose finite language is
// lits (nil when the language is infinite or too large).
func selectStrategy(lits *literal.Seq, config Config) Strategy {
	if !config.EnableLiteralFastPath || lits == nil {
		return UseDFA
	}
	// The empty language never matches; the DFA rejects in one step.
	if lits.IsEmpty() {
		return UseDFA
	}
	return UseLiteral
}
