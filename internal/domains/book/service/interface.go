package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
)

// ServiceInterface - business logic methods cho books
type ServiceInterface interface {
	// List returns books joined with their author, filtered and sorted
	List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error)

	// Create errors: *model.ValidationError, model.ErrDuplicateISBN, model.ErrAuthorNotFound
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)

	// Delete removes a book and, in the same transaction, its author when no
	// other book references it. Errors: model.ErrBookNotFound
	Delete(ctx context.Context, id int64) (*model.DeleteResult, error)

	// ListByAuthor returns the books of one author
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)

	Count(ctx context.Context) (int, error)
}
