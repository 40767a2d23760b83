package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies setup failures.
type ErrorKind string

const (
	KindToolMissing      ErrorKind = "tool_missing"
	KindAuthRequired     ErrorKind = "auth_required"
	KindInputInvalid     ErrorKind = "input_invalid"
	KindPromptFailed     ErrorKind = "prompt_failed"
	KindAborted          ErrorKind = "aborted"
	KindProvisionFailed  ErrorKind = "provision_failed"
	KindPersistFailed    ErrorKind = "persist_failed"
	KindConnectionFailed ErrorKind = "connection_failed"
	KindMigrationFailed  ErrorKind = "migration_failed"
	KindSeedFailed       ErrorKind = "seed_failed"
)

// ErrAborted is returned when the operator types the abort keyword.
var ErrAborted = errors.New("setup aborted by operator")

// Error wraps an underlying failure with the step that produced it.
type Error struct {
	Kind ErrorKind
	// Op is the human readable action that failed, e.g. "Stripe CLI is not installed".
	Op   string
	Hint string
	Err  error
}

// Fail builds an *Error.
func Fail(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithHint attaches remediation text.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a setup *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}

// KindOf returns the kind of err, or "" when err is not a setup *Error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
