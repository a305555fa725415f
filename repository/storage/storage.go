// Package storage opens the book store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/repository"
	"github.com/emzola/bookcatalog/repository/badgerstore"
	"github.com/emzola/bookcatalog/repository/postgres"
)

// Open connects to the store named by cfg.Database.Driver and returns the
// repository over it together with a function that releases the store.
// PostgreSQL schemas are migrated before the repository is returned.
func Open(cfg config.Config) (repository.Repository, func() error, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.OpenDBConn(cfg)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.New(db), db.Close, nil
	case config.DriverBadger:
		db, err := badgerstore.OpenDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return badgerstore.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
