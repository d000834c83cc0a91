package literal

import (
	"unicode/utf8"

	"github.com/coregx/mindfa/regex"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction cheap on patterns whose language is finite
// but large, such as [a-z]{6}:
//   - MaxLiterals: maximum number of words in the extracted set
//   - MaxLiteralLen: maximum length of one word in bytes
//   - MaxDepth: maximum nesting depth of the syntax tree to walk
type ExtractorConfig struct {
	// MaxLiterals limits the number of words. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each word in bytes. Default: 64.
	MaxLiteralLen int

	// MaxDepth limits recursion into the syntax tree. Default: 100.
	MaxDepth int
}

// DefaultConfig returns the default extractor configuration.
//
// Example:
//
//	extractor := literal.New(literal.DefaultConfig())
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxDepth:      100,
	}
}

// Extractor computes finite languages of syntax trees.
//
// The walk follows the algebra of finite languages:
//
//	Empty        {}
//	Lambda       {""}
//	Char(c)      {"c"}
//	Union(a, b)  L(a) ∪ L(b)
//	Concat(a, b) L(a) × L(b); {} when either side is {}
//	Star(a)      {""} when L(a) ⊆ {""}, otherwise infinite
//	Plus(a)      L(a) when L(a) ⊆ {""}, otherwise infinite
//
// Any subtree that is infinite, or exceeds a limit, makes the whole
// extraction fail.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
// Zero fields take their DefaultConfig values.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = def.MaxDepth
	}
	return &Extractor{config: config}
}

// Extract returns the language of re as a set of words.
// ok is false when the language is infinite or does not fit the limits.
// An Empty pattern yields an empty Seq with ok == true.
//
// Examples:
//
//	"abc"       → ["abc"]
//	"(a|b)c"    → ["ac", "bc"]
//	"a?"        → ["a", ""]
//	"a*"        → not finite
//	"∅*"        → [""]
func (e *Extractor) Extract(re regex.Regex) (*Seq, bool) {
	return e.extract(re, 0)
}

// Extract is a convenience wrapper using DefaultConfig.
func Extract(re regex.Regex) (*Seq, bool) {
	return New(DefaultConfig()).Extract(re)
}

func (e *Extractor) extract(re regex.Regex, depth int) (*Seq, bool) {
	if depth > e.config.MaxDepth {
		return nil, false
	}

	switch r := re.(type) {
	case regex.Empty:
		return NewSeq(), true

	case regex.Lambda:
		return NewSeq(NewLiteral(nil)), true

	case regex.Char:
		if !utf8.ValidRune(r.C) || utf8.RuneLen(r.C) > e.config.MaxLiteralLen {
			return nil, false
		}
		return NewSeq(NewLiteral(utf8.AppendRune(nil, r.C))), true

	case regex.Union:
		left, ok := e.extract(r.Left, depth+1)
		if !ok {
			return nil, false
		}
		right, ok := e.extract(r.Right, depth+1)
		if !ok {
			return nil, false
		}
		return left.union(right, e.config.MaxLiterals)

	case regex.Concat:
		left, ok := e.extract(r.Left, depth+1)
		if !ok {
			return nil, false
		}
		right, ok := e.extract(r.Right, depth+1)
		if !ok {
			return nil, false
		}
		return left.cross(right, e.config.MaxLiterals, e.config.MaxLiteralLen)

	case regex.Star:
		sub, ok := e.extract(r.Sub, depth+1)
		if !ok || !onlyEmptyWord(sub) {
			return nil, false
		}
		return NewSeq(NewLiteral(nil)), true

	case regex.Plus:
		sub, ok := e.extract(r.Sub, depth+1)
		if !ok || !onlyEmptyWord(sub) {
			return nil, false
		}
		return sub, true

	default:
		// nil or unknown node: nothing to prove
		return nil, false
	}
}

// onlyEmptyWord reports whether s ⊆ {""}.
func onlyEmptyWord(s *Seq) bool {
	return s.Len() == 0 || (s.Len() == 1 && s.Get(0).IsEmpty())
}
