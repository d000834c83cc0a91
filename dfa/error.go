package dfa

import "fmt"

// ErrStateLimitExceeded indicates that subset construction discovered more
// states than Config.MaxStates allows.
//
// Subset construction can produce exponentially many states for some
// patterns; the limit turns that into an explicit failure instead of
// unbounded memory growth.
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrNondeterministic indicates a second, different target was added for a
// (state, symbol) pair that already had one.
var ErrNondeterministic = &DFAError{
	Kind:    Nondeterministic,
	Message: "conflicting transition",
}

// ErrEpsilonTransition indicates an epsilon edge was added to a DFA.
var ErrEpsilonTransition = &DFAError{
	Kind:    EpsilonTransition,
	Message: "epsilon transition in DFA",
}

// ErrNoInitialState indicates an automaton without an initial state was
// handed to an algorithm that needs one.
var ErrNoInitialState = &DFAError{
	Kind:    NoInitialState,
	Message: "automaton has no initial state",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// StateLimitExceeded indicates too many states were created
	StateLimitExceeded ErrorKind = iota

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// Nondeterministic indicates a conflicting transition
	Nondeterministic

	// EpsilonTransition indicates an epsilon edge in a DFA
	EpsilonTransition

	// NoInitialState indicates a missing initial state
	NoInitialState
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	case Nondeterministic:
		return "Nondeterministic"
	case EpsilonTransition:
		return "EpsilonTransition"
	case NoInitialState:
		return "NoInitialState"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA operations
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
