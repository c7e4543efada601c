package model

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest is bound from the add-book form. Numeric fields stay
// strings until validated so a blank value is reported, not zeroed.
type CreateBookRequest struct {
	ISBN            string `form:"isbn" json:"isbn"`
	Title           string `form:"title" json:"title"`
	PublicationYear string `form:"publication_year" json:"publication_year"`
	AuthorID        string `form:"author_id" json:"author_id"`
}

func (r *CreateBookRequest) Normalize() {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Title = strings.TrimSpace(r.Title)
	r.PublicationYear = strings.TrimSpace(r.PublicationYear)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
}

func (r CreateBookRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ISBN, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.PublicationYear, validation.Required, is.Int),
		validation.Field(&r.AuthorID, validation.Required, is.Digit),
	)
	return wrapValidation(err)
}

// ToBook validates r and converts it into a Book.
func (r CreateBookRequest) ToBook() (*Book, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	year, err := strconv.Atoi(r.PublicationYear)
	if err != nil {
		return nil, &ValidationError{Fields: validation.Errors{"publication_year": errors.New("must be a valid integer")}}
	}
	authorID, err := strconv.ParseInt(r.AuthorID, 10, 64)
	if err != nil || authorID <= 0 {
		return nil, &ValidationError{Fields: validation.Errors{"author_id": errors.New("must be a valid author id")}}
	}

	return &Book{
		ISBN:            r.ISBN,
		Title:           r.Title,
		PublicationYear: year,
		AuthorID:        authorID,
	}, nil
}

// ParseBookID parses a path or form value into a book id.
func ParseBookID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidBookID
	}
	return id, nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}
