// Package mindfa answers whole-word membership queries for regular
// expressions by compiling them into minimal deterministic automata.
//
// Every pattern goes through the same pipeline: Thompson construction of an
// NFA, subset construction of a DFA and Moore minimization. Matching then
// walks the minimal DFA once over the word, so a query costs one table
// lookup per character and never backtracks.
//
// Basic usage:
//
//	re, err := mindfa.Compile(`(a|b)*c`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("aabbc") // true
//	re.MatchString("aabb")  // false
//	re.States()             // 3
//
// Matching is anchored at both ends: MatchString reports whether the whole
// word is in the language, not whether some substring is.
//
// One-off queries can skip Compile:
//
//	ok, err := mindfa.MatchString(`a+`, "aaa")
//
// These go through a process-wide engine that keeps the most recently used
// pattern compiled, so repeated queries against one pattern compile it once.
//
// Syntax trees can be built directly with package regex and queried with
// Matches or CompileRegex.
package mindfa

import (
	"github.com/coregx/mindfa/automaton"
	"github.com/coregx/mindfa/meta"
	"github.com/coregx/mindfa/regex"
	"github.com/coregx/mindfa/syntax"
)

// Regex is a compiled regular expression.
//
// A Regex is immutable and safe to use concurrently from multiple
// goroutines.
//
// Example:
//
//	re := mindfa.MustCompile(`[a-z]+\d`)
//	if re.MatchString("abc1") {
//	    println("matched!")
//	}
type Regex struct {
	prog    *meta.Prog
	tree    regex.Regex
	pattern string
}

// Regexp is an alias for Regex, for code written against the stdlib
// regexp naming.
type Regexp = Regex

// defaultEngine backs Matches and MatchString.
var defaultEngine = meta.NewDefaultEngine()

// Compile parses a regular expression and compiles it to a minimal DFA.
//
// Syntax is the Perl-like syntax of the standard regexp package restricted
// to constructs with a whole-word meaning; see package syntax. Returns a
// *regex.SyntaxError if the pattern is malformed or unsupported.
//
// Example:
//
//	re, err := mindfa.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern fails to compile.
//
// Example:
//
//	var keyword = mindfa.MustCompile(`if|else|for`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("mindfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom engine configuration.
//
// Example:
//
//	config := mindfa.DefaultConfig().WithMaxDFAStates(10_000)
//	re, err := mindfa.CompileWithConfig(`(a|b)*a(a|b){12}`, config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return compileTree(tree, pattern, config)
}

// CompileRegex compiles a syntax tree built with package regex.
func CompileRegex(re regex.Regex) (*Regex, error) {
	if re == nil {
		return nil, meta.ErrNilRegex
	}
	return compileTree(re, re.String(), meta.DefaultConfig())
}

func compileTree(tree regex.Regex, pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.NewEngine(config)
	if err != nil {
		return nil, err
	}
	prog, err := engine.Compile(tree)
	if err != nil {
		return nil, err
	}
	return &Regex{prog: prog, tree: tree, pattern: pattern}, nil
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// MatchString reports whether the whole word s is in the language.
func (r *Regex) MatchString(s string) bool {
	return r.prog.Accepts(s)
}

// Match reports whether the whole word b, decoded as UTF-8, is in the
// language.
func (r *Regex) Match(b []byte) bool {
	return r.prog.Accepts(string(b))
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Tree returns the syntax tree the expression was compiled from.
func (r *Regex) Tree() regex.Regex {
	return r.tree
}

// States returns the number of states of the minimal DFA.
func (r *Regex) States() int {
	return r.prog.States()
}

// Alphabet returns the characters the automaton has transitions on, in
// ascending order. Words containing any other character never match.
func (r *Regex) Alphabet() []automaton.Symbol {
	return r.prog.Alphabet()
}

// Strategy returns the scan strategy selected for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.prog.Strategy()
}

// Matches reports whether the whole word belongs to the language of re,
// using the process-wide engine and its single-pattern cache.
func Matches(re regex.Regex, word string) (bool, error) {
	return defaultEngine.IsMatch(re, word)
}

// MatchString parses pattern and reports whether the whole word s belongs
// to its language, using the process-wide engine.
func MatchString(pattern, s string) (bool, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return false, err
	}
	return defaultEngine.IsMatch(tree, s)
}

// EngineStats returns the statistics of the process-wide engine.
func EngineStats() meta.Stats {
	return defaultEngine.Stats()
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a
// regular expression matching exactly the literal text.
//
// Example:
//
//	escaped := mindfa.QuoteMeta("1+1")
//	// escaped = `1\+1`
//	mindfa.MustCompile(escaped).MatchString("1+1") // true
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
