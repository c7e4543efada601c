package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "library-catalog/internal/domains/author/model"
	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database/dbtest"
)

type repos struct {
	authors authorRepo.RepositoryInterface
	books   RepositoryInterface
}

// engines returns the repositories under test; PostgreSQL only when
// TEST_POSTGRES_DSN is set.
func engines(t *testing.T) map[string]func(t *testing.T) repos {
	return map[string]func(t *testing.T) repos{
		"sqlite": func(t *testing.T) repos {
			db := dbtest.SQLite(t)
			return repos{authorRepo.NewSQLiteRepository(db), NewSQLiteRepository(db)}
		},
		"postgres": func(t *testing.T) repos {
			pool := dbtest.Postgres(t)
			return repos{authorRepo.NewPostgresRepository(pool), NewPostgresRepository(pool)}
		},
	}
}

func seedAuthor(t *testing.T, r repos, name string) int64 {
	t.Helper()
	a, err := r.authors.Create(context.Background(), &authorModel.Author{Name: name, BirthDate: "1900-01-01"})
	require.NoError(t, err)
	return a.ID
}

func seedBook(t *testing.T, r repos, isbn, title string, authorID int64) int64 {
	t.Helper()
	b, err := r.books.Create(context.Background(), &model.Book{ISBN: isbn, Title: title, PublicationYear: 2000, AuthorID: authorID})
	require.NoError(t, err)
	return b.ID
}

func titles(books []model.BookWithAuthor) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestRepository_List(t *testing.T) {
	for name, open := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open(t)

			herbert := seedAuthor(t, r, "Frank Herbert")
			austen := seedAuthor(t, r, "Jane Austen")
			seedBook(t, r, "1", "Dune", herbert)
			seedBook(t, r, "2", "Emma", austen)
			seedBook(t, r, "3", "Children of Dune", herbert)
			seedBook(t, r, "4", "100% Pure_Fiction", austen)

			tests := []struct {
				name   string
				filter model.ListFilter
				want   []string
			}{
				{"title asc", model.NewListFilter("", "", ""), []string{"100% Pure_Fiction", "Children of Dune", "Dune", "Emma"}},
				{"title desc", model.NewListFilter("", "title", "desc"), []string{"Emma", "Dune", "Children of Dune", "100% Pure_Fiction"}},
				{"author asc ties by id", model.NewListFilter("", "author", "asc"), []string{"Dune", "Children of Dune", "Emma", "100% Pure_Fiction"}},
				{"author desc ties by id", model.NewListFilter("", "author", "desc"), []string{"Emma", "100% Pure_Fiction", "Dune", "Children of Dune"}},
				{"search title case-insensitive", model.NewListFilter("DUNE", "", ""), []string{"Children of Dune", "Dune"}},
				{"search author name", model.NewListFilter("austen", "", ""), []string{"100% Pure_Fiction", "Emma"}},
				{"percent is literal", model.NewListFilter("0%", "", ""), []string{"100% Pure_Fiction"}},
				{"underscore is literal", model.NewListFilter("e_f", "", ""), []string{"100% Pure_Fiction"}},
				{"no match", model.NewListFilter("tolkien", "", ""), []string{}},
			}

			for _, tt := range tests {
				books, err := r.books.List(ctx, tt.filter)
				require.NoError(t, err, tt.name)
				if diff := cmp.Diff(tt.want, titles(books)); diff != "" {
					t.Errorf("%s: titles mismatch (-want +got):\n%s", tt.name, diff)
				}
			}
		})
	}
}

func TestRepository_ListJoinsAuthor(t *testing.T) {
	for name, open := range engines(t) {
		t.Run(name, func(t *testing.T) {
			r := open(t)
			authorID := seedAuthor(t, r, "Frank Herbert")
			bookID := seedBook(t, r, "1", "Dune", authorID)

			books, err := r.books.List(context.Background(), model.NewListFilter("", "", ""))
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, bookID, books[0].ID)
			assert.Equal(t, authorID, books[0].Author.ID)
			assert.Equal(t, "Frank Herbert", books[0].Author.Name)
			assert.Nil(t, books[0].Author.DateOfDeath)
		})
	}
}

func TestRepository_CreateConstraints(t *testing.T) {
	for name, open := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open(t)
			authorID := seedAuthor(t, r, "Frank Herbert")
			seedBook(t, r, "isbn-1", "Dune", authorID)

			_, err := r.books.Create(ctx, &model.Book{ISBN: "isbn-1", Title: "Other", AuthorID: authorID})
			assert.ErrorIs(t, err, model.ErrDuplicateISBN)

			_, err = r.books.Create(ctx, &model.Book{ISBN: "isbn-2", Title: "Orphan", AuthorID: authorID + 100})
			assert.ErrorIs(t, err, model.ErrAuthorNotFound)

			count, err := r.books.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestRepository_DeleteAndCount(t *testing.T) {
	for name, open := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open(t)
			authorID := seedAuthor(t, r, "Frank Herbert")
			first := seedBook(t, r, "1", "Dune", authorID)
			seedBook(t, r, "2", "Dune Messiah", authorID)

			n, err := r.books.CountByAuthor(ctx, authorID)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			require.NoError(t, r.books.Delete(ctx, first))
			assert.ErrorIs(t, r.books.Delete(ctx, first), model.ErrBookNotFound)

			_, err = r.books.GetByID(ctx, first)
			assert.ErrorIs(t, err, model.ErrBookNotFound)

			remaining, err := r.books.ListByAuthor(ctx, authorID)
			require.NoError(t, err)
			require.Len(t, remaining, 1)
			assert.Equal(t, "Dune Messiah", remaining[0].Title)
		})
	}
}

func TestRepository_AcceptsFreeFormInput(t *testing.T) {
	for name, open := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := open(t)

			death := "11 February 1986, Madison"
			author, err := r.authors.Create(ctx, &authorModel.Author{
				Name:        strings.Repeat("Frank Herbert ", 20),
				BirthDate:   "8 October 1920",
				DateOfDeath: &death,
			})
			require.NoError(t, err)

			book, err := r.books.Create(ctx, &model.Book{
				ISBN:            "978-0-441-01359-3-EXTRA-LONG",
				Title:           strings.Repeat("Dune ", 60),
				PublicationYear: 9999999999,
				AuthorID:        author.ID,
			})
			require.NoError(t, err)

			got, err := r.books.GetByID(ctx, book.ID)
			require.NoError(t, err)
			assert.Equal(t, 9999999999, got.PublicationYear)
			assert.Equal(t, "978-0-441-01359-3-EXTRA-LONG", got.ISBN)
		})
	}
}
