package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/data/dto"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository"
	"github.com/emzola/bookcatalog/repository/badgerstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	var cfg config.Config
	cfg.Database.InMemory = true
	db, err := badgerstore.OpenDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), badgerstore.New(db))
}

func body(title, author string, year int) dto.BookRequestBody {
	return dto.BookRequestBody{Title: &title, Author: &author, PublicationYear: &year}
}

func seed(t *testing.T, s *service, bodies ...dto.BookRequestBody) []*data.Book {
	t.Helper()
	created := make([]*data.Book, len(bodies))
	for i, b := range bodies {
		book, err := s.CreateBook(context.Background(), b)
		require.NoError(t, err)
		created[i] = book
	}
	return created
}

func TestCreateAndGetBook(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.CreateBook(ctx, body("Dune", "Frank Herbert", 1965))
	require.NoError(t, err)

	book, err := s.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, 1965, book.PublicationYear)

	_, err = s.GetBook(ctx, "64b7f0c2a1d3e4f5a6b7c8d9")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateBookFailedValidation(t *testing.T) {
	s := newTestService(t)

	title := "Dune"
	_, err := s.CreateBook(context.Background(), dto.BookRequestBody{Title: &title})
	require.ErrorIs(t, err, ErrFailedValidation)
	assert.Contains(t, err.Error(), "author must be provided")
}

func TestUpdateAndDeleteBook(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	book := seed(t, s, body("Dune", "Frank Herbert", 1965))[0]

	author := "F. Herbert"
	updated, err := s.UpdateBook(ctx, book.ID, dto.BookRequestBody{Author: &author})
	require.NoError(t, err)
	assert.Equal(t, "F. Herbert", updated.Author)
	assert.Equal(t, "Dune", updated.Title)

	require.NoError(t, s.DeleteBook(ctx, book.ID))
	assert.ErrorIs(t, s.DeleteBook(ctx, book.ID), ErrRecordNotFound)

	_, err = s.UpdateBook(ctx, book.ID, dto.BookRequestBody{Author: &author})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListBooks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		seed(t, s, body("Book", "Author", 2000+i))
	}

	page, err := s.ListBooks(ctx, dto.QsListBooks{Filters: data.Filters{Page: 1, Limit: data.DefaultListLimit}})
	require.NoError(t, err)
	assert.Len(t, page.Results, 5)
	assert.Equal(t, &data.PageRef{Page: 2, Limit: 5}, page.Next)
	assert.Nil(t, page.Previous)

	page, err = s.ListBooks(ctx, dto.QsListBooks{Filters: data.Filters{Page: 2, Limit: 5}})
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.Nil(t, page.Next)
	assert.Equal(t, &data.PageRef{Page: 1, Limit: 5}, page.Previous)
}

func TestSearchBooks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seed(t, s,
		body("The Lord of the Rings", "J.R.R. Tolkien", 1954),
		body("The Hobbit", "J.R.R. Tolkien", 1937),
		body("Dune", "Frank Herbert", 1965),
	)

	page, err := s.SearchBooks(ctx, dto.QsSearchBooks{Query: "tolkien", Filters: data.Filters{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)

	page, err = s.SearchBooks(ctx, dto.QsSearchBooks{Query: "lordofthe", Filters: data.Filters{Page: 1, Limit: 10}})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "The Lord of the Rings", page.Results[0].Title)

	page, err = s.SearchBooks(ctx, dto.QsSearchBooks{Query: "tolkien", Filters: data.Filters{Page: 1, Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, page.Results, 1)
	assert.NotNil(t, page.Next)

	_, err = s.SearchBooks(ctx, dto.QsSearchBooks{Filters: data.Filters{Page: 1, Limit: 10}})
	assert.ErrorIs(t, err, ErrMissingSearchTerm)
}

func TestGetStats(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCount)
	assert.Nil(t, stats.EarliestPublication)
	assert.Nil(t, stats.LatestPublication)
	assert.Empty(t, stats.TitlesByAlphabeticalOrder)
	assert.Empty(t, stats.CreationTimeline)

	seed(t, s,
		body("Neuromancer", "William Gibson", 1984),
		body("Dune", "Frank Herbert", 1965),
		body("Solaris", "Stanislaw Lem", 1961),
	)
	stats, err = s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCount)
	assert.Equal(t, []string{"Dune", "Neuromancer", "Solaris"}, stats.TitlesByAlphabeticalOrder)
	assert.Equal(t, []string{"Solaris", "Dune", "Neuromancer"}, stats.TitlesByPublicationYear)
	assert.Equal(t, "Dune", stats.EarliestPublication.Title)
	assert.Equal(t, "Solaris", stats.LatestPublication.Title)
	assert.Len(t, stats.CreationTimeline, 3)
}

type failingRepo struct {
	repository.Repository
	err error
}

func (r failingRepo) FindAllBooks(context.Context) ([]*data.Book, error) {
	return nil, r.err
}

func (r failingRepo) CountBooks(context.Context) (int, error) {
	return 0, r.err
}

func (r failingRepo) FindAllBooksSorted(context.Context, data.SortField, bool) ([]*data.Book, error) {
	return nil, r.err
}

func TestStoreErrorsPassThrough(t *testing.T) {
	storeErr := errors.New("connection refused")
	s := New(config.Config{}, jsonlog.New(io.Discard, jsonlog.LevelOff), failingRepo{err: storeErr})
	ctx := context.Background()

	_, err := s.ListBooks(ctx, dto.QsListBooks{Filters: data.Filters{Page: 1, Limit: 5}})
	assert.ErrorIs(t, err, storeErr)

	_, err = s.SearchBooks(ctx, dto.QsSearchBooks{Query: "x", Filters: data.Filters{Page: 1, Limit: 5}})
	assert.ErrorIs(t, err, storeErr)

	_, err = s.GetStats(ctx)
	assert.ErrorIs(t, err, storeErr)
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(repository.ErrRecordNotFound), ErrRecordNotFound)
	assert.ErrorIs(t, translate(repository.ErrFailedValidation), ErrFailedValidation)

	err := translate(&repository.ValidationError{Fields: map[string]string{"title": "must not be empty"}})
	assert.ErrorIs(t, err, ErrFailedValidation)
	assert.EqualError(t, err, "failed validation: title must not be empty")
}
