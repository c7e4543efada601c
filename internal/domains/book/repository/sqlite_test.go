package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database/dbtest"
)

func TestMapSQLiteConstraint(t *testing.T) {
	ctx := context.Background()
	db := dbtest.SQLite(t)

	_, err := db.ExecContext(ctx, `INSERT INTO authors (id, name, birth_date) VALUES (1, 'A', '1900')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO books (id, isbn, title, author_id) VALUES (1, 'isbn-1', 'T', 1)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO books (id, isbn, title, author_id) VALUES (2, 'isbn-1', 'T', 1)`)
	require.Error(t, err)
	assert.ErrorIs(t, mapSQLiteConstraint(err), model.ErrDuplicateISBN)

	_, err = db.ExecContext(ctx, `INSERT INTO books (id, isbn, title, author_id) VALUES (3, 'isbn-3', 'T', 42)`)
	require.Error(t, err)
	assert.ErrorIs(t, mapSQLiteConstraint(err), model.ErrAuthorNotFound)

	// a clashing generated id is not a duplicate ISBN
	_, err = db.ExecContext(ctx, `INSERT INTO books (id, isbn, title, author_id) VALUES (1, 'isbn-4', 'T', 1)`)
	require.Error(t, err)
	assert.NoError(t, mapSQLiteConstraint(err))

	assert.NoError(t, mapSQLiteConstraint(errors.New("UNIQUE constraint failed: books.isbn")))
}
