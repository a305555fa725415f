package repository

import (
	"database/sql"
	"time"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/internal/objectid"
	"github.com/emzola/bookcatalog/internal/validator"
)

// queryTimeout bounds every single store round trip.
const queryTimeout = 3 * time.Second

// Repository defines the app's repository layer.
type Repository interface {
	books
}

type repository struct {
	db *sql.DB
}

// New creates a PostgreSQL backed Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}

// NewBook validates fields and builds the document to insert, with a fresh
// ID and both timestamps set to now.
func NewBook(fields data.BookFields, now time.Time) (*data.Book, error) {
	v := validator.New()
	if data.ValidateBookFields(v, fields); !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}
	id, err := objectid.New(now)
	if err != nil {
		return nil, err
	}
	book := &data.Book{ID: id, CreatedAt: now, UpdatedAt: now}
	fields.Apply(book)
	return book, nil
}

// ValidateBook returns a *ValidationError when book breaks the stored-book invariant.
func ValidateBook(book *data.Book) error {
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return &ValidationError{Fields: v.Errors}
	}
	return nil
}
