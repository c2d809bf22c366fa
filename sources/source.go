// Package sources fetches the raw product list the catalog is built from.
package sources

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/models"
)

// Source returns the full product list. It is called once per process.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Product, error)
}

func decodeProducts(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

func nopClose() error { return nil }

// Open builds the source selected by cfg. The returned close function releases
// any connection the source holds and must be called on shutdown.
func Open(cfg config.Config) (Source, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nopClose, err
	}

	switch cfg.CatalogSource {
	case config.SourceHTTP:
		return NewHTTPSource(cfg.CatalogURL, &http.Client{Timeout: cfg.FetchTimeout}), nopClose, nil
	case config.SourceGorm:
		db, err := models.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nopClose, fmt.Errorf("open postgres: %w", err)
		}
		repo := models.NewProductsRepository(db)
		return NewRepositorySource(repo), repo.Close, nil
	case config.SourceSQL:
		db, err := sql.Open(cfg.SQLDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nopClose, fmt.Errorf("open %s: %w", cfg.SQLDriver, err)
		}
		return NewSQLSource(db, cfg.SQLDriver), db.Close, nil
	default:
		return NewFileSource(cfg.CatalogPath), nopClose, nil
	}
}
