package model

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateAuthorRequest is bound from the add-author form.
type CreateAuthorRequest struct {
	Name        string `form:"name" json:"name"`
	BirthDate   string `form:"birthdate" json:"birthdate"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// Normalize trims surrounding whitespace from every field.
func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.DateOfDeath = strings.TrimSpace(r.DateOfDeath)
}

// Validate chỉ kiểm tra presence, không validate định dạng ngày
func (r CreateAuthorRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.BirthDate, validation.Required),
	)
	return wrapValidation(err)
}

// ToAuthor builds the entity; an empty date of death is stored as NULL.
func (r CreateAuthorRequest) ToAuthor() *Author {
	a := &Author{
		Name:      r.Name,
		BirthDate: r.BirthDate,
	}
	if r.DateOfDeath != "" {
		death := r.DateOfDeath
		a.DateOfDeath = &death
	}
	return a
}

// ParseID parses a path or form value into an author id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
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
