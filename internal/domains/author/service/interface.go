package service

import (
	"context"

	"library-catalog/internal/domains/author/model"
)

// ServiceInterface defines business logic operations for authors
type ServiceInterface interface {
	// Create validates presence of name and birth date, then inserts.
	// Errors: *model.ValidationError (wraps model.ErrInvalidInput)
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)

	// GetByID errors: model.ErrAuthorNotFound
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	// List returns all authors ordered by name, used for the add-book form
	List(ctx context.Context) ([]model.Author, error)

	Count(ctx context.Context) (int, error)
}
