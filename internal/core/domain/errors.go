package domain

import "fmt"

// Kinder exposes a declared error kind for opaque errors raised outside
// this module. The kind name participates in pattern matching.
type Kinder interface {
	Kind() string
}

// StatusCoder exposes an HTTP status attached to an error.
type StatusCoder interface {
	StatusCode() int
}

// StackTracer exposes captured stack text for an error.
type StackTracer interface {
	StackTrace() string
}

// ValidationError marks a failure caused by invalid caller input.
// Boundaries raise it (or wrap it) so classification can short-circuit
// on the declared kind instead of matching message text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// Kind implements Kinder.
func (e *ValidationError) Kind() string { return "ValidationError" }

// StatusError attaches an HTTP status to an underlying error, typically
// at an outbound-call boundary.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Err.Error())
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode implements StatusCoder.
func (e *StatusError) StatusCode() int { return e.Code }
