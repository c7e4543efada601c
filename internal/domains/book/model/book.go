package model

import (
	"fmt"

	authorModel "library-catalog/internal/domains/author/model"
)

// Book references exactly one author through AuthorID.
type Book struct {
	ID              int64  `json:"id" db:"id"`
	ISBN            string `json:"isbn" db:"isbn"`
	Title           string `json:"title" db:"title"`
	PublicationYear int    `json:"publication_year" db:"publication_year"`
	AuthorID        int64  `json:"author_id" db:"author_id"`
}

// BookWithAuthor is one row of the books ⨝ authors listing.
type BookWithAuthor struct {
	Book
	Author authorModel.Author `json:"author"`
}

func (b BookWithAuthor) String() string {
	return fmt.Sprintf("'%s' (%d) by %s", b.Title, b.PublicationYear, b.Author.Name)
}

// DeleteResult describes what a book deletion removed.
type DeleteResult struct {
	Book          Book
	AuthorID      int64
	AuthorRemoved bool
}
