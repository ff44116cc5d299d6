package filter

import "fmt"

// CompilationError is returned when an expression is rejected before any
// subject is seen.
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("filter %q: %s", e.Expression, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompilationError) Unwrap() error { return e.Err }

// EvaluationError is returned by Check when an expression fails on a
// subject, typically because it reads a value the subject does not have.
type EvaluationError struct {
	Expression string
	Subject    string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q on %s: %v", e.Expression, e.Subject, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
