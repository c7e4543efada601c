package repository

import (
	"context"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface defines data access for books.
// Every method runs inside the transaction bound to ctx, when there is one.
type RepositoryInterface interface {
	// Create errors: model.ErrDuplicateISBN, model.ErrAuthorNotFound
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// GetByID errors: model.ErrBookNotFound
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// List joins books with their author, filtered and ordered by filter
	List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error)

	// ListByAuthor returns an author's books ordered by title
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)

	// CountByAuthor returns how many books reference authorID
	CountByAuthor(ctx context.Context, authorID int64) (int, error)

	// Delete errors: model.ErrBookNotFound
	Delete(ctx context.Context, id int64) error

	// Count returns the number of books
	Count(ctx context.Context) (int, error)
}
