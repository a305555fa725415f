package service

import (
	"context"
	"strconv"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/data/dto"
	"golang.org/x/sync/errgroup"
)

type books interface {
	ListBooks(ctx context.Context, qs dto.QsListBooks) (data.Page, error)
	GetBook(ctx context.Context, bookID string) (*data.Book, error)
	CreateBook(ctx context.Context, requestBody dto.BookRequestBody) (*data.Book, error)
	UpdateBook(ctx context.Context, bookID string, requestBody dto.BookRequestBody) (*data.Book, error)
	DeleteBook(ctx context.Context, bookID string) error
	SearchBooks(ctx context.Context, qs dto.QsSearchBooks) (data.Page, error)
	GetStats(ctx context.Context) (data.Stats, error)
}

// ListBooks service returns one page of the catalog.
func (s *service) ListBooks(ctx context.Context, qs dto.QsListBooks) (data.Page, error) {
	books, err := s.repo.FindAllBooks(ctx)
	if err != nil {
		return data.Page{}, translate(err)
	}
	return data.Paginate(books, qs.Filters), nil
}

// GetBook service returns a book by ID.
func (s *service) GetBook(ctx context.Context, bookID string) (*data.Book, error) {
	book, err := s.repo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, translate(err)
	}
	return book, nil
}

// CreateBook service creates a new book.
func (s *service) CreateBook(ctx context.Context, requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.repo.CreateBook(ctx, requestBody.Fields())
	if err != nil {
		return nil, translate(err)
	}
	s.logger.PrintDebug("book created", map[string]string{"id": book.ID})
	return book, nil
}

// UpdateBook service applies the fields present in requestBody to a book.
func (s *service) UpdateBook(ctx context.Context, bookID string, requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.repo.UpdateBookByID(ctx, bookID, requestBody.Fields())
	if err != nil {
		return nil, translate(err)
	}
	return book, nil
}

// DeleteBook service deletes a book.
func (s *service) DeleteBook(ctx context.Context, bookID string) error {
	err := s.repo.DeleteBookByID(ctx, bookID)
	if err != nil {
		return translate(err)
	}
	s.logger.PrintDebug("book deleted", map[string]string{"id": bookID})
	return nil
}

// SearchBooks service filters the whole catalog by qs.Query, then pages
// through the matches.
func (s *service) SearchBooks(ctx context.Context, qs dto.QsSearchBooks) (data.Page, error) {
	if qs.Query == "" {
		return data.Page{}, ErrMissingSearchTerm
	}
	books, err := s.repo.FindAllBooks(ctx)
	if err != nil {
		return data.Page{}, translate(err)
	}
	return data.Paginate(data.FilterBooks(books, qs.Query), qs.Filters), nil
}

// GetStats service aggregates the catalog from a count and three sorted
// reads, issued concurrently.
func (s *service) GetStats(ctx context.Context) (data.Stats, error) {
	var count int
	var byTitle, byYear, byCreation []*data.Book
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.repo.CountBooks(ctx)
		return err
	})
	sorted := []struct {
		field data.SortField
		dst   *[]*data.Book
	}{
		{data.SortByTitle, &byTitle},
		{data.SortByPublicationYear, &byYear},
		{data.SortByCreatedAt, &byCreation},
	}
	for _, q := range sorted {
		q := q
		g.Go(func() error {
			books, err := s.repo.FindAllBooksSorted(ctx, q.field, true)
			*q.dst = books
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return data.Stats{}, translate(err)
	}
	if len(byTitle) != count {
		s.logger.PrintDebug("book count changed while building stats", map[string]string{
			"count":  strconv.Itoa(count),
			"listed": strconv.Itoa(len(byTitle)),
		})
	}
	return data.BuildStats(count, byTitle, byYear, byCreation), nil
}
