package regex

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched (via errors.Is) by every SyntaxError.
var ErrSyntax = errors.New("regex syntax error")

// SyntaxError reports malformed pattern text or an invalid construction
// such as a character range whose high end precedes its low end.
type SyntaxError struct {
	// Msg describes what is wrong.
	Msg string

	// Expr is the offending fragment, when known.
	Expr string

	// Cause is the underlying error, if any (for example a *syntax.Error
	// from the pattern front end).
	Cause error
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	switch {
	case e.Expr != "" && e.Cause != nil:
		return fmt.Sprintf("regex syntax error: %s: `%s`: %v", e.Msg, e.Expr, e.Cause)
	case e.Expr != "":
		return fmt.Sprintf("regex syntax error: %s: `%s`", e.Msg, e.Expr)
	case e.Cause != nil:
		return fmt.Sprintf("regex syntax error: %s: %v", e.Msg, e.Cause)
	default:
		return "regex syntax error: " + e.Msg
	}
}

// Unwrap returns the underlying cause
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is makes every SyntaxError match ErrSyntax
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
