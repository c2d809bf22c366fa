package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/storefront/app/web"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/store"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type CatalogProvider interface {
	Snapshot() (models.CatalogSnapshot, error)
}

type CatalogHandler struct {
	catalog CatalogProvider
}

func NewCatalogHandler(c CatalogProvider) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
	}
}

// NewProduct maps a catalog product to its JSON shape.
func NewProduct(p models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price.InexactFloat64(),
		Description: p.Description,
		Image:       p.Image,
	}
}

// WriteCatalogError answers with 503 while the catalog is loading or after it failed to load.
func WriteCatalogError(w http.ResponseWriter, err error) {
	var fetchErr *store.FetchError
	if errors.Is(err, store.ErrCatalogNotLoaded) || errors.As(err, &fetchErr) {
		web.WriteError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	web.WriteError(w, http.StatusInternalServerError, "failed to get products")
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse filters
	criteria := models.FilterCriteria{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		WriteCatalogError(w, err)
		return
	}

	res := snapshot.Apply(criteria)
	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = NewProduct(p)
	}

	web.WriteJSON(w, http.StatusOK, Response{
		Total:    len(products),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(web.PathParam(r, "id"), 10, 64)
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		WriteCatalogError(w, err)
		return
	}

	product, ok := snapshot.ByID(id)
	if !ok {
		web.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	web.WriteJSON(w, http.StatusOK, NewProduct(product))
}
