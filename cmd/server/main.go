// Package main boots the storefront HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mytheresa/storefront/app"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/logging"
	"github.com/mytheresa/storefront/sources"
	"github.com/mytheresa/storefront/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service_failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("service_stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	src, closeSource, err := sources.Open(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	catalogStore := store.NewCatalogStore(src, logger)
	sessions := store.NewSessions(logger)
	defer sessions.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.NewRouter(catalogStore, sessions, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// The catalog loads in the background; until it resolves the API answers 503.
	// A failed load is terminal and is not returned, so the server keeps reporting it.
	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(gctx, cfg.FetchTimeout)
		defer cancel()
		_ = catalogStore.Load(loadCtx)
		return nil
	})

	g.Go(func() error {
		logger.Info("http_listen", zap.String("addr", cfg.HTTPAddr), zap.String("catalog_source", src.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown_begin")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
