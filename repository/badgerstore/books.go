package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/internal/objectid"
	"github.com/emzola/bookcatalog/repository"
)

// FindAllBooks retrieves every book document in key (and therefore ID) order.
func (s *store) FindAllBooks(ctx context.Context) ([]*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	books := []*data.Book{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var book data.Book
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &book)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			books = append(books, &book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FindAllBooksSorted retrieves every book document ordered by field.
func (s *store) FindAllBooksSorted(ctx context.Context, field data.SortField, ascending bool) ([]*data.Book, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unsupported sort field %q", field)
	}
	books, err := s.FindAllBooks(ctx)
	if err != nil {
		return nil, err
	}
	data.SortBooks(books, field, ascending)
	return books, nil
}

// FindBookByID retrieves a book document by its ID.
func (s *store) FindBookByID(ctx context.Context, id string) (*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !objectid.Valid(id) {
		return nil, repository.ErrRecordNotFound
	}
	var book *data.Book
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		book, err = getBook(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// CreateBook validates fields and stores a new book document.
func (s *store) CreateBook(ctx context.Context, fields data.BookFields) (*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	book, err := repository.NewBook(fields, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(bookKey(book.ID))
		switch {
		case err == nil:
			return fmt.Errorf("book %s already exists", book.ID)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return putBook(txn, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBookByID applies fields to a book document inside one read-write
// transaction and returns the stored result. Badger aborts the commit with
// ErrConflict if another transaction wrote the same key in between.
func (s *store) UpdateBookByID(ctx context.Context, id string, fields data.BookFields) (*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !objectid.Valid(id) {
		return nil, repository.ErrRecordNotFound
	}
	var book *data.Book
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		book, err = getBook(txn, id)
		if err != nil {
			return err
		}
		fields.Apply(book)
		if err := repository.ValidateBook(book); err != nil {
			return err
		}
		book.UpdatedAt = time.Now().UTC()
		return putBook(txn, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBookByID deletes a book document.
func (s *store) DeleteBookByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !objectid.Valid(id) {
		return repository.ErrRecordNotFound
	}
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(bookKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return repository.ErrRecordNotFound
			}
			return err
		}
		return txn.Delete(bookKey(id))
	})
}

// CountBooks returns the number of book documents without decoding them.
func (s *store) CountBooks(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func getBook(txn *badger.Txn, id string) (*data.Book, error) {
	item, err := txn.Get(bookKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, repository.ErrRecordNotFound
		}
		return nil, err
	}
	var book data.Book
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &book)
	})
	if err != nil {
		return nil, fmt.Errorf("decode book %s: %w", id, err)
	}
	return &book, nil
}

func putBook(txn *badger.Txn, book *data.Book) error {
	val, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("encode book %s: %w", book.ID, err)
	}
	return txn.Set(bookKey(book.ID), val)
}
