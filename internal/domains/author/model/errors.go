package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidInput   = errors.New("invalid author input")
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidID      = errors.New("invalid author id")
)

// ValidationError carries per-field validation failures.
// errors.Is(err, ErrInvalidInput) holds for every ValidationError.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "invalid author: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
