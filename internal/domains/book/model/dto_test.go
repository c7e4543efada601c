package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateBookRequest {
	return CreateBookRequest{
		ISBN:            "9780441013593",
		Title:           "Dune",
		PublicationYear: "1965",
		AuthorID:        "1",
	}
}

func TestCreateBookRequest_ToBook(t *testing.T) {
	book, err := validRequest().ToBook()
	require.NoError(t, err)
	assert.Equal(t, &Book{ISBN: "9780441013593", Title: "Dune", PublicationYear: 1965, AuthorID: 1}, book)
}

func TestCreateBookRequest_ToBookRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookRequest)
		field  string
	}{
		{"blank isbn", func(r *CreateBookRequest) { r.ISBN = "" }, "isbn"},
		{"blank title", func(r *CreateBookRequest) { r.Title = "" }, "title"},
		{"blank year", func(r *CreateBookRequest) { r.PublicationYear = "" }, "publication_year"},
		{"non-integer year", func(r *CreateBookRequest) { r.PublicationYear = "nineteen" }, "publication_year"},
		{"non-integer author", func(r *CreateBookRequest) { r.AuthorID = "abc" }, "author_id"},
		{"zero author", func(r *CreateBookRequest) { r.AuthorID = "0" }, "author_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.ToBook()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateBookRequest_NormalizeTrimsBeforeValidation(t *testing.T) {
	req := CreateBookRequest{ISBN: "   ", Title: " Dune ", PublicationYear: " 1965 ", AuthorID: " 2 "}
	req.Normalize()

	assert.Equal(t, "Dune", req.Title)
	_, err := req.ToBook()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseBookID(t *testing.T) {
	id, err := ParseBookID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "4.2", "1e3"} {
		_, err := ParseBookID(raw)
		assert.ErrorIs(t, err, ErrInvalidBookID, raw)
	}
}

func TestBookWithAuthorString(t *testing.T) {
	b := BookWithAuthor{Book: Book{Title: "Dune", PublicationYear: 1965}}
	b.Author.Name = "Frank Herbert"
	assert.Equal(t, "'Dune' (1965) by Frank Herbert", b.String())
}
