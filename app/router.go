// Package app wires the HTTP handlers into a chi router.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/categories"
	"github.com/mytheresa/storefront/app/web"
	"github.com/mytheresa/storefront/store"
)

// NewRouter registers the routes and returns the handler with middleware.
func NewRouter(catalogStore *store.CatalogStore, sessions *store.Sessions, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := catalog.NewCatalogHandler(catalogStore)
	categoryHandler := categories.NewCategoryHandler(catalogStore)
	cartHandler := cart.NewCartHandler(sessions, catalogStore, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler(catalogStore))

	r.Get("/catalog", catalogHandler.HandleGet)
	r.Get("/catalog/{id}", catalogHandler.HandleGetProduct)
	r.Get("/categories", categoryHandler.HandleGetAll)

	r.Route("/cart", func(r chi.Router) {
		r.Post("/", cartHandler.HandleCreate)
		r.Get("/{session}", cartHandler.HandleGet)
		r.Delete("/{session}", cartHandler.HandleDelete)
		r.Post("/{session}/items", cartHandler.HandleAddItem)
		r.Put("/{session}/items/{index}", cartHandler.HandleSetQuantity)
	})

	return r
}

func healthHandler(catalogStore *store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := catalogStore.Snapshot()
		if err != nil {
			catalog.WriteCatalogError(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"products": snap.Len(),
		})
	}
}
