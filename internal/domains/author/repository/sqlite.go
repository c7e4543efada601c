package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/database"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates an author repository backed by SQLite
func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, birth_date, date_of_death)
        VALUES (?, ?, ?)
        RETURNING id, name, birth_date, date_of_death
    `

	var (
		created model.Author
		death   sql.NullString
	)
	err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, query, a.Name, a.BirthDate, a.DateOfDeath).Scan(
		&created.ID,
		&created.Name,
		&created.BirthDate,
		&death,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	created.DateOfDeath = nullableString(death)

	return &created, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `
        SELECT id, name, COALESCE(birth_date, ''), date_of_death
        FROM authors
        WHERE id = ?
    `

	var (
		a     model.Author
		death sql.NullString
	)
	err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.BirthDate, &death)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	a.DateOfDeath = nullableString(death)

	return &a, nil
}

// LockByID only checks existence: SQLite serializes writers on the database
// file, so the surrounding transaction already excludes other writers.
func (r *sqliteRepository) LockByID(ctx context.Context, id int64) error {
	var found int64
	err := database.SQLFromContext(ctx, r.db).
		QueryRowContext(ctx, `SELECT id FROM authors WHERE id = ?`, id).
		Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to lock author: %w", err)
	}
	return nil
}

func (r *sqliteRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, COALESCE(birth_date, ''), date_of_death
        FROM authors
        ORDER BY name ASC, id ASC
    `

	rows, err := database.SQLFromContext(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var (
			a     model.Author
			death sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate, &death); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		a.DateOfDeath = nullableString(death)
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.SQLFromContext(ctx, r.db).ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if n == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := database.SQLFromContext(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
