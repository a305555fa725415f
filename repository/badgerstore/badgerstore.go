// Package badgerstore keeps books as JSON documents in an embedded Badger
// database. It implements repository.Repository and is selected with
// database.driver: badger.
package badgerstore

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/emzola/bookcatalog/config"
	jsoniter "github.com/json-iterator/go"
)

const bookPrefix = "book:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OpenDB opens the Badger database described by cfg: in memory when
// Database.InMemory is set, otherwise under Database.Path.
func OpenDB(cfg config.Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Database.Path).WithSyncWrites(true)
	if cfg.Database.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return db, nil
}

type store struct {
	db *badger.DB
}

// New creates a Badger backed repository.
func New(db *badger.DB) *store {
	return &store{db: db}
}

func bookKey(id string) []byte {
	return []byte(bookPrefix + id)
}
