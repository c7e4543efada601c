package model

import "fmt"

// Author owns zero or more books through books.author_id.
// The relationship is resolved by query, never stored on this struct.
type Author struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	BirthDate   string  `json:"birth_date" db:"birth_date"`
	DateOfDeath *string `json:"date_of_death,omitempty" db:"date_of_death"`
}

// Lifespan renders "birth - death", leaving death blank for living authors.
func (a Author) Lifespan() string {
	death := ""
	if a.DateOfDeath != nil {
		death = *a.DateOfDeath
	}
	return fmt.Sprintf("%s - %s", a.BirthDate, death)
}

func (a Author) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Lifespan())
}
