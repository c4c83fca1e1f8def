// Package apperr defines the error kinds surfaced by the tutoring engine.
//
// Each kind is a typed error carrying detail for the caller plus a sentinel
// for errors.Is checks, so callers can branch on the kind without caring
// which component raised it.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrRoleMismatch matches any *RoleMismatchError.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrInvalidSubmission matches any *InvalidSubmissionError.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// NotFoundError indicates an unknown user, quiz or lesson id.
type NotFoundError struct {
	Kind string // "user", "quiz", "lesson"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a *NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// RoleMismatchError indicates an operation restricted to one role was
// invoked for a user holding another.
type RoleMismatchError struct {
	UserID    string
	Operation string
	Want      string
	Got       string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("%s is only available to %ss (user %q is a %s)", e.Operation, e.Want, e.UserID, e.Got)
}

func (e *RoleMismatchError) Is(target error) bool { return target == ErrRoleMismatch }

// InvalidSubmissionError indicates malformed caller input, such as an answer
// count that does not match the quiz or an unsupported help channel.
type InvalidSubmissionError struct {
	Reason string
}

func (e *InvalidSubmissionError) Error() string {
	return "invalid submission: " + e.Reason
}

func (e *InvalidSubmissionError) Is(target error) bool { return target == ErrInvalidSubmission }

// InvalidSubmission builds an *InvalidSubmissionError with a formatted reason.
func InvalidSubmission(format string, args ...any) error {
	return &InvalidSubmissionError{Reason: fmt.Sprintf(format, args...)}
}
