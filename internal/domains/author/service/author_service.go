package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToAuthor())
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	log.Info().Int64("author_id", created.ID).Str("name", created.Name).Msg("author created")
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *authorService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
