package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	authorModel "library-catalog/internal/domains/author/model"
	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/pkg/database"
)

type bookService struct {
	repo       repository.RepositoryInterface
	authorRepo authorRepo.RepositoryInterface
	tx         database.Transactor
}

// NewBookService wires the book repository with the author repository it
// needs for existence checks and orphan removal.
func NewBookService(
	repo repository.RepositoryInterface,
	authorRepo authorRepo.RepositoryInterface,
	tx database.Transactor,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		authorRepo: authorRepo,
		tx:         tx,
	}
}

func (s *bookService) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	books, err := s.repo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	req.Normalize()
	book, err := req.ToBook()
	if err != nil {
		return nil, err
	}

	var created *model.Book
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.authorRepo.GetByID(ctx, book.AuthorID); err != nil {
			if errors.Is(err, authorModel.ErrAuthorNotFound) {
				return model.ErrAuthorNotFound
			}
			return err
		}

		created, err = s.repo.Create(ctx, book)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateISBN) || errors.Is(err, model.ErrAuthorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().
		Int64("book_id", created.ID).
		Str("isbn", created.ISBN).
		Int64("author_id", created.AuthorID).
		Msg("book created")
	return created, nil
}

// Delete: lookup -> lock author -> delete book -> count -> delete orphaned author.
// The author row lock serializes concurrent deletions of the same author's
// books so exactly one of them observes zero remaining books.
func (s *bookService) Delete(ctx context.Context, id int64) (*model.DeleteResult, error) {
	var result *model.DeleteResult

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.authorRepo.LockByID(ctx, book.AuthorID); err != nil {
			return fmt.Errorf("lock author %d: %w", book.AuthorID, err)
		}

		if err := s.repo.Delete(ctx, book.ID); err != nil {
			return err
		}

		remaining, err := s.repo.CountByAuthor(ctx, book.AuthorID)
		if err != nil {
			return err
		}

		result = &model.DeleteResult{Book: *book, AuthorID: book.AuthorID}
		if remaining == 0 {
			if err := s.authorRepo.Delete(ctx, book.AuthorID); err != nil {
				return fmt.Errorf("delete orphaned author %d: %w", book.AuthorID, err)
			}
			result.AuthorRemoved = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete book %d: %w", id, err)
	}

	log.Info().
		Int64("book_id", id).
		Int64("author_id", result.AuthorID).
		Bool("author_removed", result.AuthorRemoved).
		Msg("book deleted")
	return result, nil
}

func (s *bookService) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list books by author: %w", err)
	}
	return books, nil
}

func (s *bookService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
