// Package services holds the Submission Gateway: validation and recording of
// contact messages, newsletter signups and demo requests, plus the stats
// read path.
//
// Errors returned here are transport-agnostic. Translation into HTTP status
// codes happens in the handler layer.
package services

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is the sentinel matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signals a uniqueness violation. It is distinct from
	// ErrValidation: the input was well-formed but clashes with stored state.
	ErrConflict = errors.New("conflict")

	// ErrAlreadySubscribed is returned when a newsletter email is already on
	// the list. errors.Is(err, ErrConflict) holds for it.
	ErrAlreadySubscribed = &conflictError{msg: "email already subscribed"}
)

type conflictError struct{ msg string }

func (e *conflictError) Error() string { return e.msg }
func (e *conflictError) Unwrap() error { return ErrConflict }

// FieldError describes one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }
