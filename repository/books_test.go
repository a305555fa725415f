package repository_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/repository"
	"github.com/emzola/bookcatalog/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to the database named by TEST_DATABASE_DSN and empties
// the books table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	var cfg config.Config
	cfg.Database.DSN = dsn
	cfg.Database.MaxOpenConns = 5
	cfg.Database.MaxIdleConns = 5
	cfg.Database.MaxIdleTime = "1m"
	db, err := postgres.OpenDBConn(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db))
	_, err = db.ExecContext(ctx, "TRUNCATE books")
	require.NoError(t, err)
	return db
}

func bookFields(title, author string, year int) data.BookFields {
	return data.BookFields{Title: &title, Author: &author, PublicationYear: &year}
}

func TestPostgresBookLifecycle(t *testing.T) {
	repo := repository.New(newTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateBook(ctx, bookFields("Dune", "Frank Herbert", 1965))
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)

	found, err := repo.FindBookByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Frank Herbert", found.Author)

	time.Sleep(10 * time.Millisecond)
	title := "Dune Messiah"
	updated, err := repo.UpdateBookByID(ctx, created.ID, data.BookFields{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, 1965, updated.PublicationYear)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	empty := ""
	_, err = repo.UpdateBookByID(ctx, created.ID, data.BookFields{Author: &empty})
	assert.ErrorIs(t, err, repository.ErrFailedValidation)

	count, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.DeleteBookByID(ctx, created.ID))
	_, err = repo.FindBookByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteBookByID(ctx, created.ID), repository.ErrRecordNotFound)
}

func TestPostgresFindAllBooksSorted(t *testing.T) {
	repo := repository.New(newTestDB(t))
	ctx := context.Background()

	for _, f := range []data.BookFields{
		bookFields("b", "Author B", 2001),
		bookFields("C", "Author C", 1999),
		bookFields("a", "Author A", 2010),
	} {
		_, err := repo.CreateBook(ctx, f)
		require.NoError(t, err)
	}

	byTitle, err := repo.FindAllBooksSorted(ctx, data.SortByTitle, true)
	require.NoError(t, err)
	require.Len(t, byTitle, 3)
	assert.Equal(t, "C", byTitle[0].Title)
	assert.Equal(t, "b", byTitle[2].Title)

	byYear, err := repo.FindAllBooksSorted(ctx, data.SortByPublicationYear, true)
	require.NoError(t, err)
	assert.Equal(t, 1999, byYear[0].PublicationYear)

	_, err = repo.FindAllBooksSorted(ctx, data.SortField("size"), true)
	assert.Error(t, err)
}

func TestPostgresInvalidID(t *testing.T) {
	repo := repository.New(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindBookByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	year := 2000
	_, err = repo.UpdateBookByID(ctx, "64b7f0c2a1d3e4f5a6b7c8d9", data.BookFields{PublicationYear: &year})
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}
