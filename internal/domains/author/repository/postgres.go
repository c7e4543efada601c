package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/database"
)

// postgresRepository implements RepositoryInterface with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, birth_date, date_of_death)
        VALUES ($1, $2, $3)
        RETURNING id, name, birth_date, date_of_death
    `

	var created model.Author
	err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, query, a.Name, a.BirthDate, a.DateOfDeath).Scan(
		&created.ID,
		&created.Name,
		&created.BirthDate,
		&created.DateOfDeath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `
        SELECT id, name, COALESCE(birth_date, ''), date_of_death
        FROM authors
        WHERE id = $1
    `

	var a model.Author
	err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.BirthDate,
		&a.DateOfDeath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) LockByID(ctx context.Context, id int64) error {
	var locked int64
	err := database.PgxFromContext(ctx, r.pool).
		QueryRow(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, id).
		Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to lock author: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, COALESCE(birth_date, ''), date_of_death
        FROM authors
        ORDER BY name ASC, id ASC
    `

	rows, err := database.PgxFromContext(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate, &a.DateOfDeath); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := database.PgxFromContext(ctx, r.pool).Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := database.PgxFromContext(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return count, nil
}
