// Package syntax turns pattern text into a regex syntax tree.
//
// Parsing is delegated to the standard regexp/syntax parser (Perl flags),
// whose tree is then lowered onto the closed variant set of package regex.
// Constructs without a counterpart in that set are rejected:
//
//	supported    literals, concatenation, |, *, +, ?, {n}, {n,}, {n,m},
//	             groups, (?i) case folding, character classes up to
//	             MaxClassSize characters, \d, \w
//	unsupported  ., anchors (^ $ \A \z), word boundaries (\b \B),
//	             classes larger than MaxClassSize (including most
//	             negated classes)
//
// Every failure is a *regex.SyntaxError, so errors.Is(err, regex.ErrSyntax)
// holds for malformed input such as "a{5,2}" or "[b-a]" as well as for
// unsupported constructs, which additionally match ErrUnsupported.
package syntax

import (
	"errors"
	"fmt"
	resyntax "regexp/syntax"
	"sort"
	"unicode"

	"github.com/coregx/mindfa/regex"
)

// ErrUnsupported indicates a construct that has no membership-only meaning
// in this engine.
var ErrUnsupported = errors.New("unsupported construct")

// ErrInvalidConfig indicates invalid parser configuration.
var ErrInvalidConfig = errors.New("invalid parser configuration")

// Config configures the parser.
type Config struct {
	// MaxClassSize is the largest character class, counted in characters,
	// that is expanded into a union.
	// Default: 128
	MaxClassSize int

	// Flags are passed to regexp/syntax.
	// Default: syntax.Perl
	Flags resyntax.Flags
}

// DefaultConfig returns the default parser configuration.
func DefaultConfig() Config {
	return Config{
		MaxClassSize: 128,
		Flags:        resyntax.Perl,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxClassSize <= 0 {
		return fmt.Errorf("%w: MaxClassSize must be > 0", ErrInvalidConfig)
	}
	return nil
}

// WithMaxClassSize returns a new config with the specified class size limit.
func (c Config) WithMaxClassSize(n int) Config {
	c.MaxClassSize = n
	return c
}

// Parser lowers pattern text into regex trees.
type Parser struct {
	config Config
}

// NewParser creates a parser with the given configuration.
func NewParser(config Config) (*Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Parser{config: config}, nil
}

// Parse parses pattern with DefaultConfig.
//
// Example:
//
//	re, err := syntax.Parse("(a|b)*c")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(re) // (a|b)*c
func Parse(pattern string) (regex.Regex, error) {
	p := &Parser{config: DefaultConfig()}
	return p.Parse(pattern)
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) regex.Regex {
	re, err := Parse(pattern)
	if err != nil {
		panic(`syntax: Parse(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

// Parse parses pattern into a regex tree.
func (p *Parser) Parse(pattern string) (regex.Regex, error) {
	ast, err := resyntax.Parse(pattern, p.config.Flags)
	if err != nil {
		var serr *resyntax.Error
		if errors.As(err, &serr) {
			return nil, &regex.SyntaxError{Msg: string(serr.Code), Expr: serr.Expr, Cause: err}
		}
		return nil, &regex.SyntaxError{Msg: "parse failed", Expr: pattern, Cause: err}
	}
	return p.lower(ast)
}

func (p *Parser) lower(re *resyntax.Regexp) (regex.Regex, error) {
	switch re.Op {
	case resyntax.OpNoMatch:
		return regex.Empty{}, nil

	case resyntax.OpEmptyMatch:
		return regex.Lambda{}, nil

	case resyntax.OpLiteral:
		fold := re.Flags&resyntax.FoldCase != 0
		parts := make([]regex.Regex, len(re.Rune))
		for i, c := range re.Rune {
			if fold {
				parts[i] = foldChar(c)
			} else {
				parts[i] = regex.Char{C: c}
			}
		}
		return regex.ConcatAll(parts...), nil

	case resyntax.OpCharClass:
		return p.lowerClass(re)

	case resyntax.OpCapture:
		return p.lower(re.Sub[0])

	case resyntax.OpStar, resyntax.OpPlus, resyntax.OpQuest:
		sub, err := p.lower(re.Sub[0])
		if err != nil {
			return nil, err
		}
		switch re.Op {
		case resyntax.OpStar:
			return regex.Star{Sub: sub}, nil
		case resyntax.OpPlus:
			return regex.Plus{Sub: sub}, nil
		default:
			return regex.Optional(sub), nil
		}

	case resyntax.OpRepeat:
		sub, err := p.lower(re.Sub[0])
		if err != nil {
			return nil, err
		}
		switch {
		case re.Max == -1:
			return regex.AtLeast(sub, re.Min), nil
		case re.Min == re.Max:
			return regex.Repeat(sub, re.Min), nil
		default:
			return regex.RepeatRange(sub, re.Min, re.Max)
		}

	case resyntax.OpConcat, resyntax.OpAlternate:
		subs := make([]regex.Regex, len(re.Sub))
		for i, s := range re.Sub {
			lowered, err := p.lower(s)
			if err != nil {
				return nil, err
			}
			subs[i] = lowered
		}
		if re.Op == resyntax.OpConcat {
			return regex.ConcatAll(subs...), nil
		}
		return regex.UnionAll(subs...), nil

	default:
		// OpAnyChar, OpAnyCharNotNL, anchors and word boundaries
		return nil, unsupported(re.String(), fmt.Sprintf("operator %v", re.Op))
	}
}

// lowerClass expands a character class into a union of its characters.
func (p *Parser) lowerClass(re *resyntax.Regexp) (regex.Regex, error) {
	size := 0
	for i := 0; i+1 < len(re.Rune); i += 2 {
		size += int(re.Rune[i+1]-re.Rune[i]) + 1
		if size > p.config.MaxClassSize {
			return nil, unsupported(re.String(),
				fmt.Sprintf("character class larger than %d", p.config.MaxClassSize))
		}
	}
	parts := make([]regex.Regex, 0, size)
	for i := 0; i+1 < len(re.Rune); i += 2 {
		for c := re.Rune[i]; c <= re.Rune[i+1]; c++ {
			parts = append(parts, regex.Char{C: c})
		}
	}
	return regex.UnionAll(parts...), nil
}

// foldChar returns the union of every case variant of c.
func foldChar(c rune) regex.Regex {
	orbit := []rune{c}
	for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	if len(orbit) == 1 {
		return regex.Char{C: c}
	}
	sort.Slice(orbit, func(i, j int) bool { return orbit[i] < orbit[j] })
	parts := make([]regex.Regex, len(orbit))
	for i, f := range orbit {
		parts[i] = regex.Char{C: f}
	}
	return regex.UnionAll(parts...)
}

func unsupported(expr, msg string) error {
	return &regex.SyntaxError{Msg: msg, Expr: expr, Cause: ErrUnsupported}
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
