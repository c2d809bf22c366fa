package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/web"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/store"
)

type Line struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type Response struct {
	SessionID string  `json:"session_id"`
	Lines     []Line  `json:"lines"`
	Total     float64 `json:"total"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type SessionProvider interface {
	Start() uuid.UUID
	Get(id uuid.UUID) (*store.CartStore, error)
	End(id uuid.UUID) error
}

type CatalogProvider interface {
	Snapshot() (models.CatalogSnapshot, error)
}

type CartHandler struct {
	sessions SessionProvider
	catalog  CatalogProvider
	logger   *zap.Logger
}

func NewCartHandler(s SessionProvider, c CatalogProvider, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{sessions: s, catalog: c, logger: logger}
}

func newResponse(id uuid.UUID, c models.Cart) Response {
	lines := make([]Line, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, Line{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Image:     l.Product.Image,
			Price:     l.Product.Price.InexactFloat64(),
			Quantity:  l.Quantity,
			LineTotal: models.LineTotal(l).InexactFloat64(),
		})
	}
	return Response{
		SessionID: id.String(),
		Lines:     lines,
		Total:     models.Total(c).InexactFloat64(),
	}
}

// cartFor resolves the session in the path. It writes the error response itself.
func (h *CartHandler) cartFor(w http.ResponseWriter, r *http.Request) (uuid.UUID, *store.CartStore, bool) {
	id, err := uuid.Parse(web.PathParam(r, "session"))
	if err != nil {
		web.WriteError(w, http.StatusNotFound, "Cart not found")
		return uuid.Nil, nil, false
	}
	cart, err := h.sessions.Get(id)
	if err != nil {
		web.WriteError(w, http.StatusNotFound, "Cart not found")
		return uuid.Nil, nil, false
	}
	return id, cart, true
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		web.WriteError(w, http.StatusBadRequest, "Quantity must be zero or positive")
	case errors.Is(err, models.ErrLineNotFound):
		web.WriteError(w, http.StatusNotFound, "Cart line not found")
	case errors.Is(err, store.ErrCartClosed):
		web.WriteError(w, http.StatusNotFound, "Cart not found")
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		web.WriteError(w, http.StatusInternalServerError, "Failed to update cart")
	}
}

// HandleCreate starts a new session with an empty cart.
func (h *CartHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Start()
	web.WriteJSON(w, http.StatusCreated, newResponse(id, models.NewCart()))
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, cartStore, ok := h.cartFor(w, r)
	if !ok {
		return
	}
	c, err := cartStore.Cart(r.Context())
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, newResponse(id, c))
}

// HandleAddItem adds one unit of a catalog product to the cart.
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	id, cartStore, ok := h.cartFor(w, r)
	if !ok {
		return
	}

	var input addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := models.Validate(input); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing product_id")
		return
	}

	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		catalog.WriteCatalogError(w, err)
		return
	}
	product, found := snapshot.ByID(input.ProductID)
	if !found {
		web.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	c, err := cartStore.Add(r.Context(), product)
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, newResponse(id, c))
}

// HandleSetQuantity overwrites the quantity of the line at {index}.
func (h *CartHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	id, cartStore, ok := h.cartFor(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(web.PathParam(r, "index"))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid line index")
		return
	}

	var input setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := models.Validate(input); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Quantity must be zero or positive")
		return
	}

	c, err := cartStore.SetQuantity(r.Context(), index, *input.Quantity)
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, newResponse(id, c))
}

// HandleDelete ends the session. The cart is discarded.
func (h *CartHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(web.PathParam(r, "session"))
	if err != nil || h.sessions.End(id) != nil {
		web.WriteError(w, http.StatusNotFound, "Cart not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
