package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values for Database.Driver.
const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	} `yaml:"log"`
	Database struct {
		Driver       string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
		Path         string `yaml:"path" env:"BADGER_PATH" env-default:"./var/badger"`
		InMemory     bool   `yaml:"in_memory" env:"BADGER_IN_MEMORY"`
	} `yaml:"database"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
}

// Decode reads the configuration from the YAML file at path, then applies
// environment overrides. Variables from a local .env file are loaded first
// when one exists; a malformed .env is an error. A missing config file is not
// an error: the configuration is then built from the environment and defaults
// alone.
func Decode(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(&cfg)
	case err == nil:
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
