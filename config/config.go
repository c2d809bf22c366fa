// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Catalog source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceGorm = "gorm"
	SourceSQL  = "sql"
)

// Config holds the knobs for the HTTP server, the catalog source and logging.
type Config struct {
	HTTPAddr        string
	CatalogSource   string
	CatalogPath     string
	CatalogURL      string
	DatabaseURL     string
	SQLDriver       string
	FetchTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	sec := defSec
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sec = n
		}
	}
	return time.Duration(sec) * time.Second
}

// Load reads the given .env files (".env" when none are given) into the environment
// without overriding variables that are already set, then collects configuration with defaults.
// Missing .env files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		CatalogSource:   getenv("CATALOG_SOURCE", SourceFile),
		CatalogPath:     getenv("CATALOG_PATH", "./data.json"),
		CatalogURL:      getenv("CATALOG_URL", ""),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		SQLDriver:       getenv("CATALOG_SQL_DRIVER", "postgres"),
		FetchTimeout:    durenvs("FETCH_TIMEOUT", 10),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "json"),
	}, nil
}

// Validate checks that the selected catalog source has what it needs.
func (c Config) Validate() error {
	switch c.CatalogSource {
	case SourceFile:
		if c.CatalogPath == "" {
			return errors.New("CATALOG_PATH is required for the file source")
		}
	case SourceHTTP:
		if c.CatalogURL == "" {
			return errors.New("CATALOG_URL is required for the http source")
		}
	case SourceGorm:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the gorm source")
		}
	case SourceSQL:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the sql source")
		}
		if c.SQLDriver != "postgres" && c.SQLDriver != "mysql" {
			return fmt.Errorf("unsupported CATALOG_SQL_DRIVER %q", c.SQLDriver)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}
