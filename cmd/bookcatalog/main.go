package main

import (
	"expvar"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/handler"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository"
	"github.com/emzola/bookcatalog/repository/storage"
	"github.com/emzola/bookcatalog/service"
)

const version = "1.0.0"

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Book Catalog API
// @version 1.0.0
// @description This is an API service for managing a catalog of books: CRUD, text search, pagination and statistics.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	level, err := jsonlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	logger = jsonlog.New(os.Stdout, level)

	// Initialize the book store
	repo, closeStore, err := storage.Open(cfg)
	if err != nil {
		logger.PrintFatal(err, map[string]string{"driver": cfg.Database.Driver})
	}
	defer closeStore()
	logger.PrintInfo("database connection established", map[string]string{
		"driver": cfg.Database.Driver,
	})

	if cfg.Metrics.Enabled {
		expvar.NewString("version").Set(version)
		expvar.Publish("goroutines", expvar.Func(func() any {
			return runtime.NumGoroutine()
		}))
		expvar.Publish("timestamp", expvar.Func(func() any {
			return time.Now().Unix()
		}))
	}

	// Application layers
	service := service.New(cfg, logger, repo)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		closeStore()
		logger.PrintFatal(err, nil)
	}
}
