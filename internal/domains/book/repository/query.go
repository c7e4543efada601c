package repository

import (
	"fmt"
	"strings"

	"library-catalog/internal/domains/book/model"
)

const listSelect = `
        SELECT b.id, b.isbn, b.title, COALESCE(b.publication_year, 0), b.author_id,
               a.id, a.name, COALESCE(a.birth_date, ''), a.date_of_death
        FROM books b
        JOIN authors a ON a.id = b.author_id
`

// orderByClause maps the whitelisted sort options onto SQL.
// Only constants reach the query string.
func orderByClause(filter model.ListFilter) string {
	column := "b.title"
	if filter.SortBy == model.SortByAuthor {
		column = "a.name"
	}

	direction := "ASC"
	if filter.Direction == model.SortDesc {
		direction = "DESC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, b.id ASC", column, direction)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching search literally anywhere.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
