package receptionist

import "fmt"

// CollaboratorError wraps a failed calendar or LLM call. It is always caught
// at the conversation boundary and surfaced as an apologetic reply; the
// active booking state is never advanced on one.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorErr(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}
