package meta

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/mindfa/automaton"
	"github.com/coregx/mindfa/dfa"
	"github.com/coregx/mindfa/literal"
	"github.com/coregx/mindfa/nfa"
	"github.com/coregx/mindfa/regex"
	"github.com/coregx/mindfa/simd"
)

// ErrNilRegex indicates a nil syntax tree was passed to the engine.
var ErrNilRegex = errors.New("meta: nil regex")

// Prog is a compiled pattern: the minimal DFA, its scan tables and, for
// finite languages, the literal searcher.
//
// A Prog is immutable and safe for concurrent use.
type Prog struct {
	pattern  string
	strategy Strategy

	nfaStates int
	dfaStates int
	min       *dfa.DFA
	matcher   *dfa.Matcher

	literals    *literal.Seq
	ahoCorasick *ahocorasick.Automaton // nil unless strategy == UseLiteral and some word is non-empty
}

// compile runs the full pipeline for re.
func compile(re regex.Regex, config Config) (*Prog, error) {
	if re == nil {
		return nil, ErrNilRegex
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{MaxRecursionDepth: config.MaxRecursionDepth})
	n, err := compiler.Compile(re)
	if err != nil {
		return nil, err
	}

	d, err := dfa.Determinize(n, dfa.DefaultConfig().WithMaxStates(config.MaxDFAStates))
	if err != nil {
		return nil, err
	}

	m, err := dfa.Minimize(d)
	if err != nil {
		return nil, err
	}

	matcher, err := dfa.NewMatcher(m)
	if err != nil {
		return nil, err
	}

	p := &Prog{
		pattern:   re.String(),
		strategy:  UseDFA,
		nfaStates: n.NumStates(),
		dfaStates: d.NumStates(),
		min:       m,
		matcher:   matcher,
	}

	if config.EnableLiteralFastPath {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxDepth:      config.MaxRecursionDepth,
		})
		if lits, ok := extractor.Extract(re); ok {
			p.literals = lits
		}
	}
	p.strategy = selectStrategy(p.literals, config)
	if p.strategy == UseLiteral {
		p.ahoCorasick = buildAhoCorasick(p.literals)
	}
	if !config.EnableASCIITable {
		p.matcher = matcher.WithoutASCIITable()
	}
	return p, nil
}

// buildAhoCorasick builds a searcher over the non-empty words of lits,
// longest first. Returns nil if there are none or the build fails; the DFA
// then decides every word.
func buildAhoCorasick(lits *literal.Seq) *ahocorasick.Automaton {
	ordered := lits.Clone()
	ordered.SortLongestFirst()

	builder := ahocorasick.NewBuilder()
	added := 0
	for i := 0; i < ordered.Len(); i++ {
		lit := ordered.Get(i)
		if lit.IsEmpty() {
			continue
		}
		builder.AddPattern(lit.Bytes)
		added++
	}
	if added == 0 {
		return nil
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// scan reports whether word is accepted, along with which fast paths were
// taken.
func (p *Prog) scan(word string) (matched, viaLiteral, viaASCII bool) {
	if p.strategy == UseLiteral {
		if word == "" {
			if p.literals.ContainsEmpty() {
				return true, true, false
			}
		} else if p.ahoCorasick != nil {
			b := []byte(word)
			if m := p.ahoCorasick.Find(b, 0); m != nil && m.Start == 0 && m.End == len(b) {
				return true, true, false
			}
		}
	}

	if p.matcher.HasASCIITable() && simd.IsASCIIString(word) {
		return p.matcher.MatchASCII(word), false, true
	}
	return p.matcher.Match(word), false, false
}

// Accepts reports whether the whole word belongs to the pattern's language.
func (p *Prog) Accepts(word string) bool {
	matched, _, _ := p.scan(word)
	return matched
}

// Pattern returns the canonical rendering of the compiled regex.
func (p *Prog) Pattern() string {
	return p.pattern
}

// Strategy returns the scan strategy selected for the pattern.
func (p *Prog) Strategy() Strategy {
	return p.strategy
}

// States returns the number of states of the minimal DFA.
func (p *Prog) States() int {
	return p.matcher.States()
}

// Alphabet returns the symbols of the minimal DFA in ascending order.
func (p *Prog) Alphabet() []automaton.Symbol {
	return p.matcher.Alphabet()
}

// DFA returns a copy of the minimal DFA.
func (p *Prog) DFA() *dfa.DFA {
	return p.min.Clone()
}

// Literals returns the finite language of the pattern, or nil when the
// language is infinite, too large, or the literal fast path is disabled.
func (p *Prog) Literals() []string {
	if p.literals == nil {
		return nil
	}
	return p.literals.Strings()
}
