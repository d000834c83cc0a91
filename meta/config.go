// Package meta implements the match engine: it drives the compilation
// pipeline, memoizes the most recent compiled pattern and picks the scan
// strategy for each word.
//
// The pipeline for a pattern is:
//
//	regex.Regex --nfa.Compile--> NFA --dfa.Determinize--> DFA
//	            --dfa.Minimize--> minimal DFA --dfa.NewMatcher--> Matcher
//
// Strategy selection is based on the language of the pattern:
//   - UseLiteral: the language is a small finite set of words; an
//     Aho-Corasick automaton over them answers most membership queries
//     and the minimal DFA decides the rest
//   - UseDFA: everything else; the minimal DFA decides
//
// Independently of the strategy, a word made only of ASCII bytes is scanned
// through a dense 128-column transition table when the DFA alphabet is ASCII.
package meta

import (
	"log/slog"
	"strconv"
)

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig().
//	    WithMaxDFAStates(10_000).
//	    WithLogger(logger)
//	engine, err := meta.NewEngine(config)
type Config struct {
	// MaxDFAStates caps subset construction. 0 means unlimited.
	// Patterns needing more states fail with dfa.ErrStateLimitExceeded.
	// Default: 0
	MaxDFAStates int

	// MaxRecursionDepth limits the nesting depth of syntax trees during NFA
	// compilation. 0 means unlimited.
	// Default: 0
	MaxRecursionDepth int

	// EnableLiteralFastPath enables the Aho-Corasick strategy for patterns
	// with a small finite language.
	// Default: true
	EnableLiteralFastPath bool

	// MaxLiterals is the largest finite language, in words, handled by the
	// literal fast path.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen is the longest word, in bytes, handled by the literal
	// fast path.
	// Default: 64
	MaxLiteralLen int

	// EnableASCIITable enables the dense ASCII transition table for
	// ASCII-only alphabets.
	// Default: true
	EnableASCIITable bool

	// Logger receives debug records for compilations and cache activity.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:          0,
		MaxRecursionDepth:     0,
		EnableLiteralFastPath: true,
		MaxLiterals:           64,
		MaxLiteralLen:         64,
		EnableASCIITable:      true,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxDFAStates < 0 {
		return &ConfigError{
			Field:   "MaxDFAStates",
			Message: "must be >= 0",
		}
	}

	if c.MaxRecursionDepth < 0 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 0 and 100,000",
		}
	}

	if c.EnableLiteralFastPath {
		if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 10,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 4096 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 4096",
			}
		}
	}

	return nil
}

// WithMaxDFAStates returns a new config with the specified state limit.
func (c Config) WithMaxDFAStates(n int) Config {
	c.MaxDFAStates = n
	return c
}

// WithLiteralFastPath returns a new config with the literal fast path
// enabled or disabled.
func (c Config) WithLiteralFastPath(enabled bool) Config {
	c.EnableLiteralFastPath = enabled
	return c
}

// WithMaxLiterals returns a new config with the specified literal limit.
func (c Config) WithMaxLiterals(n int) Config {
	c.MaxLiterals = n
	return c
}

// WithASCIITable returns a new config with the ASCII table enabled or
// disabled.
func (c Config) WithASCIITable(enabled bool) Config {
	c.EnableASCIITable = enabled
	return c
}

// WithLogger returns a new config with the specified logger.
func (c Config) WithLogger(logger *slog.Logger) Config {
	c.Logger = logger
	return c
}

// logger returns the configured logger or the process default.
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// ConfigError represents an invalid configuration error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "meta: invalid config: " + e.Field + ": " + e.Message
}

// String is used in log records.
func (c Config) String() string {
	return "maxDFAStates=" + strconv.Itoa(c.MaxDFAStates) +
		" literalFastPath=" + strconv.FormatBool(c.EnableLiteralFastPath) +
		" asciiTable=" + strconv.FormatBool(c.EnableASCIITable)
}
