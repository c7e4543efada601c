package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidInput   = errors.New("invalid book input")
	ErrInvalidBookID  = errors.New("invalid book id")
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateISBN  = errors.New("ISBN already exists")
	ErrAuthorNotFound = errors.New("author not found")
)

// ValidationError carries per-field validation failures.
// errors.Is(err, ErrInvalidInput) holds for every ValidationError.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "invalid book: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
