package repository

import (
	"context"

	"library-catalog/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors.
// Every method runs inside the transaction bound to ctx, when there is one.
type RepositoryInterface interface {
	// Create inserts a new author and returns it with its generated id
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID returns model.ErrAuthorNotFound if the row does not exist
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	// LockByID takes a write lock on the author row for the rest of the
	// transaction. Returns model.ErrAuthorNotFound if the row does not exist.
	LockByID(ctx context.Context, id int64) error

	// List returns every author ordered by name
	List(ctx context.Context) ([]model.Author, error)

	// Delete returns model.ErrAuthorNotFound if nothing was deleted
	Delete(ctx context.Context, id int64) error

	// Count returns the number of authors
	Count(ctx context.Context) (int, error)
}
