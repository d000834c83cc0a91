package nfa

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common NFA errors
var (
	// ErrInvalidPattern indicates the syntax tree holds a nil child, a node
	// type outside the closed variant set or a Char with an invalid rune
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrTooComplex indicates the syntax tree nests deeper than the
	// configured recursion limit
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid NFA configuration")
)

// maxErrorPattern is the longest pattern rendering, in runes, kept in a
// CompileError.
const maxErrorPattern = 64

// CompileError wraps compilation errors with additional context.
// Pattern holds the rendering of the tree, cut to maxErrorPattern runes
// with a trailing "...".
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// shortPattern cuts a rendering to maxErrorPattern runes.
func shortPattern(pattern string) string {
	if utf8.RuneCountInString(pattern) <= maxErrorPattern {
		return pattern
	}
	return string([]rune(pattern)[:maxErrorPattern]) + "..."
}
