package service

import (
	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository"
)

type Service interface {
	books
}

// service defines the service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
	}
}
