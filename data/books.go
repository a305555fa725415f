package data

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/emzola/bookcatalog/internal/validator"
)

// Book defines a book model.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title" validate:"required"`
	Author          string    `json:"author" validate:"required"`
	PublicationYear int       `json:"publicationYear"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookFields holds the writable fields of a book. A nil field is absent:
// creation requires every field, an update leaves absent fields untouched.
type BookFields struct {
	Title           *string `json:"title" validate:"required,min=1"`
	Author          *string `json:"author" validate:"required,min=1"`
	PublicationYear *int    `json:"publicationYear" validate:"required"`
}

// Apply overwrites the fields of book that are present in f.
func (f BookFields) Apply(book *Book) {
	if f.Title != nil {
		book.Title = *f.Title
	}
	if f.Author != nil {
		book.Author = *f.Author
	}
	if f.PublicationYear != nil {
		book.PublicationYear = *f.PublicationYear
	}
}

// ValidateBookFields checks that f carries everything a new book needs.
func ValidateBookFields(v *validator.Validator, f BookFields) {
	v.Struct(f)
}

// ValidateBook checks the stored-book invariant.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Struct(book)
}

// SortField names a field books can be ordered by.
type SortField string

const (
	SortByTitle           SortField = "title"
	SortByPublicationYear SortField = "publicationYear"
	SortByCreatedAt       SortField = "createdAt"
)

// Valid reports whether f is a supported sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByPublicationYear, SortByCreatedAt:
		return true
	}
	return false
}

// SortBooks orders books in place by field. Titles compare byte-wise and
// ties are broken by ascending ID regardless of direction.
func SortBooks(books []*Book, field SortField, ascending bool) {
	slices.SortStableFunc(books, func(a, b *Book) int {
		var c int
		switch field {
		case SortByTitle:
			c = strings.Compare(a.Title, b.Title)
		case SortByPublicationYear:
			c = cmp.Compare(a.PublicationYear, b.PublicationYear)
		case SortByCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if !ascending {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c
	})
}
