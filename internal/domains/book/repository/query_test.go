package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-catalog/internal/domains/book/model"
)

func TestOrderByClause(t *testing.T) {
	tests := []struct {
		filter model.ListFilter
		want   string
	}{
		{model.NewListFilter("", "", ""), " ORDER BY b.title ASC, b.id ASC"},
		{model.NewListFilter("", "title", "desc"), " ORDER BY b.title DESC, b.id ASC"},
		{model.NewListFilter("", "author", "asc"), " ORDER BY a.name ASC, b.id ASC"},
		{model.NewListFilter("", "author", "desc"), " ORDER BY a.name DESC, b.id ASC"},
		{model.ListFilter{SortBy: "a.name; DROP TABLE books", Direction: "desc"}, " ORDER BY b.title DESC, b.id ASC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, orderByClause(tt.filter))
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dune%", containsPattern("dune"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, containsPattern(`c:\dir`))
}
