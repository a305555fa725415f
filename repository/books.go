package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/internal/objectid"
)

type books interface {
	FindAllBooks(ctx context.Context) ([]*data.Book, error)
	FindBookByID(ctx context.Context, id string) (*data.Book, error)
	CreateBook(ctx context.Context, fields data.BookFields) (*data.Book, error)
	UpdateBookByID(ctx context.Context, id string, fields data.BookFields) (*data.Book, error)
	DeleteBookByID(ctx context.Context, id string) error
	CountBooks(ctx context.Context) (int, error)
	FindAllBooksSorted(ctx context.Context, field data.SortField, ascending bool) ([]*data.Book, error)
}

var bookColumns = []any{"id", "title", "author", "publication_year", "created_at", "updated_at"}

var sortColumns = map[data.SortField]string{
	data.SortByTitle:           "title",
	data.SortByPublicationYear: "publication_year",
	data.SortByCreatedAt:       "created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*data.Book, error) {
	var book data.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublicationYear,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) queryBooks(ctx context.Context, query string, args ...any) ([]*data.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// FindAllBooks retrieves every book record in ID order.
func (r *repository) FindAllBooks(ctx context.Context) ([]*data.Book, error) {
	query := `
		SELECT id, title, author, publication_year, created_at, updated_at
		FROM books
		ORDER BY id`
	return r.queryBooks(ctx, query)
}

// FindAllBooksSorted retrieves every book record ordered by field.
func (r *repository) FindAllBooksSorted(ctx context.Context, field data.SortField, ascending bool) ([]*data.Book, error) {
	column, ok := sortColumns[field]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", field)
	}
	var key exp.Orderable = goqu.I(column)
	if field == data.SortByTitle {
		// Byte-wise, whatever the database collation.
		key = goqu.L(`"title" COLLATE "C"`)
	}
	order := key.Asc()
	if !ascending {
		order = key.Desc()
	}
	query, args, err := goqu.Dialect("postgres").
		From("books").
		Select(bookColumns...).
		Order(order, goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	return r.queryBooks(ctx, query, args...)
}

// FindBookByID retrieves a book record by its ID.
func (r *repository) FindBookByID(ctx context.Context, id string) (*data.Book, error) {
	if !objectid.Valid(id) {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, publication_year, created_at, updated_at
		FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// CreateBook validates fields and inserts a new book record.
func (r *repository) CreateBook(ctx context.Context, fields data.BookFields) (*data.Book, error) {
	book, err := NewBook(fields, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO books (id, title, author, publication_year)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	args := []any{book.ID, book.Title, book.Author, book.PublicationYear}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBookByID applies fields to a book record and returns the stored
// result. The row is locked between the read and the write, so the
// returned book reflects exactly this update.
func (r *repository) UpdateBookByID(ctx context.Context, id string, fields data.BookFields) (*data.Book, error) {
	if !objectid.Valid(id) {
		return nil, ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT id, title, author, publication_year, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE`
	book, err := scanBook(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	fields.Apply(book)
	if err := ValidateBook(book); err != nil {
		return nil, err
	}

	query = `
		UPDATE books
		SET title = $1, author = $2, publication_year = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`
	args := []any{book.Title, book.Author, book.PublicationYear, book.ID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&book.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBookByID deletes a book record.
func (r *repository) DeleteBookByID(ctx context.Context, id string) error {
	if !objectid.Valid(id) {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// CountBooks returns the number of book records.
func (r *repository) CountBooks(ctx context.Context) (int, error) {
	query := `SELECT count(*) FROM books`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
