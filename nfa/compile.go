package nfa

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/mindfa/regex"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits how deeply nested a syntax tree may be.
	// 0 means unlimited. Left-nested concatenations grow one level per
	// character, so a limit also bounds the pattern length.
	// Default: 0
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 0,
	}
}

// Validate checks the configuration.
func (c CompilerConfig) Validate() error {
	if c.MaxRecursionDepth < 0 {
		return fmt.Errorf("%w: MaxRecursionDepth must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Compiler translates regex syntax trees into NFAs by Thompson construction.
//
// Each node yields a fragment with exactly one initial state and any number
// of final states whose language equals the node's language:
//
//	Empty      one non-final initial state
//	Lambda     one final initial state
//	Char(c)    initial --c--> final
//	Concat     finals of a --ε--> initial of b; only b's finals stay final
//	Union      new initial --ε--> both initials; finals of both stay final
//	Star       new initial --ε--> a, new final; a's finals --ε--> both
//	Plus(a)    Concat(a, Star(a))
type Compiler struct {
	config CompilerConfig
	depth  int
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles re with the default configuration.
func Compile(re regex.Regex) (*NFA, error) {
	return NewDefaultCompiler().Compile(re)
}

// Compile translates re into an NFA with normalized state ids.
func (c *Compiler) Compile(re regex.Regex) (*NFA, error) {
	c.depth = 0
	n, err := c.compile(re)
	if err != nil {
		pattern := ""
		if re != nil {
			pattern = shortPattern(re.String())
		}
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return n, nil
}

func (c *Compiler) compile(re regex.Regex) (*NFA, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.config.MaxRecursionDepth > 0 && c.depth > c.config.MaxRecursionDepth {
		return nil, ErrTooComplex
	}

	switch r := re.(type) {
	case regex.Empty:
		return single(false)
	case regex.Lambda:
		return single(true)
	case regex.Char:
		return c.compileChar(r)
	case regex.Concat:
		return c.compileConcat(r)
	case regex.Union:
		return c.compileUnion(r)
	case regex.Star:
		return c.compileStar(r)
	case regex.Plus:
		return c.compile(regex.Concat{Left: r.Sub, Right: regex.Star{Sub: r.Sub}})
	case nil:
		return nil, fmt.Errorf("%w: nil node", ErrInvalidPattern)
	default:
		return nil, fmt.Errorf("%w: unsupported node %T", ErrInvalidPattern, re)
	}
}

// single builds the one-state fragment used by Empty and Lambda.
func single(final bool) (*NFA, error) {
	n := New()
	if err := n.AddState(0, final); err != nil {
		return nil, err
	}
	if err := n.MarkInitialState(0); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Compiler) compileChar(r regex.Char) (*NFA, error) {
	// Negative symbols collide with Epsilon; surrogates and out-of-range
	// values never occur in decoded input.
	if !utf8.ValidRune(r.C) {
		return nil, fmt.Errorf("%w: invalid rune %#x", ErrInvalidPattern, r.C)
	}
	n := New()
	if err := n.AddState(0, false); err != nil {
		return nil, err
	}
	if err := n.AddState(1, true); err != nil {
		return nil, err
	}
	if err := n.MarkInitialState(0); err != nil {
		return nil, err
	}
	if err := n.AddTransition(0, 1, r.C); err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Compiler) compileConcat(r regex.Concat) (*NFA, error) {
	left, right, err := c.compilePair(r.Left, r.Right)
	if err != nil {
		return nil, err
	}

	res := New()
	if err := res.absorb(left, 0, false); err != nil {
		return nil, err
	}
	offset := res.NextID()
	if err := res.absorb(right, offset, true); err != nil {
		return nil, err
	}
	for _, f := range left.FinalStates() {
		if err := res.AddTransition(f, right.InitialState()+offset, Epsilon); err != nil {
			return nil, err
		}
	}
	if err := res.MarkInitialState(left.InitialState()); err != nil {
		return nil, err
	}
	res.NormalizeStates()
	return res, nil
}

func (c *Compiler) compileUnion(r regex.Union) (*NFA, error) {
	left, right, err := c.compilePair(r.Left, r.Right)
	if err != nil {
		return nil, err
	}

	res := New()
	if err := res.absorb(left, 0, true); err != nil {
		return nil, err
	}
	offset := res.NextID()
	if err := res.absorb(right, offset, true); err != nil {
		return nil, err
	}
	start := res.NextID()
	if err := res.AddState(start, false); err != nil {
		return nil, err
	}
	if err := res.MarkInitialState(start); err != nil {
		return nil, err
	}
	if err := res.AddTransition(start, left.InitialState(), Epsilon); err != nil {
		return nil, err
	}
	if err := res.AddTransition(start, right.InitialState()+offset, Epsilon); err != nil {
		return nil, err
	}
	res.NormalizeStates()
	return res, nil
}

func (c *Compiler) compileStar(r regex.Star) (*NFA, error) {
	n, err := c.compile(r.Sub)
	if err != nil {
		return nil, err
	}

	finals := n.FinalStates()
	oldStart := n.InitialState()
	start := n.NextID()
	accept := start + 1
	if err := n.AddState(start, false); err != nil {
		return nil, err
	}
	if err := n.AddState(accept, true); err != nil {
		return nil, err
	}
	if err := n.AddTransition(start, oldStart, Epsilon); err != nil {
		return nil, err
	}
	if err := n.AddTransition(start, accept, Epsilon); err != nil {
		return nil, err
	}
	for _, f := range finals {
		if err := n.SetFinal(f, false); err != nil {
			return nil, err
		}
		if err := n.AddTransition(f, start, Epsilon); err != nil {
			return nil, err
		}
		if err := n.AddTransition(f, accept, Epsilon); err != nil {
			return nil, err
		}
	}
	if err := n.MarkInitialState(start); err != nil {
		return nil, err
	}
	n.NormalizeStates()
	return n, nil
}

func (c *Compiler) compilePair(a, b regex.Regex) (*NFA, *NFA, error) {
	left, err := c.compile(a)
	if err != nil {
		return nil, nil, err
	}
	right, err := c.compile(b)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// absorb copies every state and transition of src into n, shifting ids by
// offset. Final states stay final only when keepFinal is set.
func (n *NFA) absorb(src *NFA, offset StateID, keepFinal bool) error {
	for _, id := range src.States() {
		if err := n.AddState(id+offset, keepFinal && src.IsFinal(id)); err != nil {
			return err
		}
	}
	for from, row := range src.trans {
		for sym, dst := range row {
			for _, to := range dst {
				if err := n.AddTransition(from+offset, to+offset, sym); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
