package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/database"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (isbn, title, publication_year, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, isbn, title, publication_year, author_id
    `

	var created model.Book
	err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, query, b.ISBN, b.Title, b.PublicationYear, b.AuthorID).Scan(
		&created.ID,
		&created.ISBN,
		&created.Title,
		&created.PublicationYear,
		&created.AuthorID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, model.ErrDuplicateISBN
			case pgForeignKeyViolation:
				return nil, model.ErrAuthorNotFound
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
        SELECT id, isbn, title, COALESCE(publication_year, 0), author_id
        FROM books
        WHERE id = $1
    `

	var b model.Book
	err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.ISBN,
		&b.Title,
		&b.PublicationYear,
		&b.AuthorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	query := listSelect
	args := []interface{}{}

	if filter.Search != "" {
		query += ` WHERE b.title ILIKE $1 ESCAPE '\' OR a.name ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(filter.Search))
	}
	query += orderByClause(filter)

	rows, err := database.PgxFromContext(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.BookWithAuthor{}
	for rows.Next() {
		var item model.BookWithAuthor
		if err := rows.Scan(
			&item.ID,
			&item.ISBN,
			&item.Title,
			&item.PublicationYear,
			&item.AuthorID,
			&item.Author.ID,
			&item.Author.Name,
			&item.Author.BirthDate,
			&item.Author.DateOfDeath,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	query := `
        SELECT id, isbn, title, COALESCE(publication_year, 0), author_id
        FROM books
        WHERE author_id = $1
        ORDER BY title ASC, id ASC
    `

	rows, err := database.PgxFromContext(ctx, r.pool).Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.PublicationYear, &b.AuthorID); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := database.PgxFromContext(ctx, r.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := database.PgxFromContext(ctx, r.pool).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
