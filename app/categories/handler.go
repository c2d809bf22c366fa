package categories

import (
	"net/http"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/web"
	"github.com/mytheresa/storefront/models"
)

type CategoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryProvider interface {
	Snapshot() (models.CatalogSnapshot, error)
}

type CategoryHandler struct {
	catalog CategoryProvider
}

func NewCategoryHandler(c CategoryProvider) *CategoryHandler {
	return &CategoryHandler{catalog: c}
}

// HandleGetAll lists the distinct categories of the catalog in first-seen order.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		catalog.WriteCatalogError(w, err)
		return
	}

	categories := snapshot.Categories()
	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			Name:  c.Name,
			Count: c.Count,
		}
	}

	web.WriteJSON(w, http.StatusOK, response)
}
