package automaton

import (
	"errors"
	"fmt"
)

// Common automaton errors.
// Both indicate a bug in a construction routine: the engine never exposes
// raw automaton building to untrusted input.
var (
	// ErrUnknownState indicates an operation referenced a state that is not
	// registered in the automaton.
	ErrUnknownState = errors.New("unknown state")

	// ErrDuplicateState indicates a state id was registered twice.
	ErrDuplicateState = errors.New("duplicate state")
)

// StateError reports which operation failed on which state.
type StateError struct {
	Op    string
	State StateID
	Err   error
}

// Error implements the error interface
func (e *StateError) Error() string {
	if e.State == InvalidState {
		return fmt.Sprintf("%s: invalid state: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: state %d: %v", e.Op, e.State, e.Err)
}

// Unwrap returns the underlying sentinel
func (e *StateError) Unwrap() error {
	return e.Err
}
