// Package main loads a JSON catalog file into the products table used by the
// gorm and sql catalog sources.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/logging"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path := flag.String("file", cfg.CatalogPath, "JSON catalog to import")
	dsn := flag.String("dsn", cfg.DatabaseURL, "Postgres connection string")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := seed(context.Background(), *path, *dsn, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, path, dsn string, logger *zap.Logger) error {
	if dsn == "" {
		return errors.New("DATABASE_URL or -dsn is required")
	}

	products, err := sources.NewFileSource(path).Fetch(ctx)
	if err != nil {
		return err
	}
	// Refuse to import what the service would refuse to load.
	if _, err := models.NewCatalogSnapshot(products); err != nil {
		return err
	}

	db, err := models.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	repo := models.NewProductsRepository(db)
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := repo.Upsert(ctx, products); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}

	stored, err := repo.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog seeded", zap.String("file", path), zap.Int("imported", len(products)), zap.Int("stored", len(stored)))
	return nil
}
