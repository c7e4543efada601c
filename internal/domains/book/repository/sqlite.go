package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/database"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a book repository backed by SQLite
func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (isbn, title, publication_year, author_id)
        VALUES (?, ?, ?, ?)
        RETURNING id, isbn, title, publication_year, author_id
    `

	var created model.Book
	err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, query, b.ISBN, b.Title, b.PublicationYear, b.AuthorID).Scan(
		&created.ID,
		&created.ISBN,
		&created.Title,
		&created.PublicationYear,
		&created.AuthorID,
	)
	if err != nil {
		if mapped := mapSQLiteConstraint(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
        SELECT id, isbn, title, COALESCE(publication_year, 0), author_id
        FROM books
        WHERE id = ?
    `

	var b model.Book
	err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.ISBN,
		&b.Title,
		&b.PublicationYear,
		&b.AuthorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &b, nil
}

func (r *sqliteRepository) List(ctx context.Context, filter model.ListFilter) ([]model.BookWithAuthor, error) {
	query := listSelect
	args := []interface{}{}

	if filter.Search != "" {
		// LOWER() của SQLite chỉ fold ASCII
		query += ` WHERE LOWER(b.title) LIKE ? ESCAPE '\' OR LOWER(a.name) LIKE ? ESCAPE '\'`
		pattern := containsPattern(strings.ToLower(filter.Search))
		args = append(args, pattern, pattern)
	}
	query += orderByClause(filter)

	rows, err := database.SQLFromContext(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []model.BookWithAuthor{}
	for rows.Next() {
		var (
			item  model.BookWithAuthor
			death sql.NullString
		)
		if err := rows.Scan(
			&item.ID,
			&item.ISBN,
			&item.Title,
			&item.PublicationYear,
			&item.AuthorID,
			&item.Author.ID,
			&item.Author.Name,
			&item.Author.BirthDate,
			&death,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		if death.Valid {
			d := death.String
			item.Author.DateOfDeath = &d
		}
		books = append(books, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

func (r *sqliteRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	query := `
        SELECT id, isbn, title, COALESCE(publication_year, 0), author_id
        FROM books
        WHERE author_id = ?
        ORDER BY title ASC, id ASC
    `

	rows, err := database.SQLFromContext(ctx, r.db).QueryContext(ctx, query, authorID)
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

func (r *sqliteRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := database.SQLFromContext(ctx, r.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE author_id = ?`, authorID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.SQLFromContext(ctx, r.db).ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// mapSQLiteConstraint translates constraint failures into domain errors.
// Returns nil for anything else.
func mapSQLiteConstraint(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return model.ErrDuplicateISBN
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return model.ErrAuthorNotFound
	}
	return nil
}
