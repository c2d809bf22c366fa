package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/store"
)

// --- Mock Catalog ---

type MockCatalog struct {
	SourceProducts []models.Product
	Err            error

	snapshotCalls int
}

func (m *MockCatalog) Snapshot() (models.CatalogSnapshot, error) {
	m.snapshotCalls++
	if m.Err != nil {
		return models.CatalogSnapshot{}, m.Err
	}
	return models.NewCatalogSnapshot(m.SourceProducts)
}

// --- Helpers ---

func newTestProduct(id int64, name, category string, price float64) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Price:       decimal.NewFromFloat(price),
		Description: name + " description",
		Image:       "/images/" + name + ".png",
	}
}

func productNames(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct(1, "Red Shirt", "Category A", 19.99),
		newTestProduct(2, "Blue Hat", "Category B", 24.99),
		newTestProduct(3, "Red Scarf", "Category A", 10.00),
		newTestProduct(4, "Green Shirt", "Category C", 95.50),
	}

	testCases := []struct {
		name               string
		url                string
		mockSetup          func() *MockCatalog
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "No filters returns the whole catalog in order",
			url:  "/catalog",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Equal(t, []string{"Red Shirt", "Blue Hat", "Red Scarf", "Green Shirt"}, productNames(resp.Products))
				assert.Equal(t, Product{
					ID:          1,
					Name:        "Red Shirt",
					Category:    "Category A",
					Price:       19.99,
					Description: "Red Shirt description",
					Image:       "/images/Red Shirt.png",
				}, resp.Products[0])
			},
		},
		{
			name: "Filter by category",
			url:  "/catalog?category=Category+A",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2, resp.Total)
				assert.Equal(t, []string{"Red Shirt", "Red Scarf"}, productNames(resp.Products))
			},
		},
		{
			name: "Search is case-insensitive",
			url:  "/catalog?q=SHIRT",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, []string{"Red Shirt", "Green Shirt"}, productNames(resp.Products))
			},
		},
		{
			name: "Combined filters",
			url:  "/catalog?category=Category+A&q=scarf",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.Total)
				assert.Equal(t, []string{"Red Scarf"}, productNames(resp.Products))
			},
		},
		{
			name: "Empty result",
			url:  "/catalog?category=nonexistent",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 0, resp.Total)
				assert.NotNil(t, resp.Products)
				assert.Len(t, resp.Products, 0)
			},
		},
		{
			name: "Catalog still loading",
			url:  "/catalog",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{Err: store.ErrCatalogNotLoaded}
			},
			expectedStatusCode: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "catalog unavailable", errResp["error"])
			},
		},
		{
			name: "Catalog failed to load",
			url:  "/catalog",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{Err: &store.FetchError{Source: "file", Err: errors.New("no such file")}}
			},
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name: "Unexpected error",
			url:  "/catalog",
			mockSetup: func() *MockCatalog {
				return &MockCatalog{Err: errors.New("boom")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to get products", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mock := tc.mockSetup()
			handler := NewCatalogHandler(mock)
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, 1, mock.snapshotCalls)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleGetDoesNotMutateCatalog(t *testing.T) {
	products := []models.Product{newTestProduct(1, "Red Shirt", "Category A", 20)}
	snap, err := models.NewCatalogSnapshot(products)
	require.NoError(t, err)
	handler := NewCatalogHandler(staticCatalog{snap})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.HandleGet(rec, httptest.NewRequest("GET", "/catalog?category=Category+B", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, products, snap.Products())
}

type staticCatalog struct {
	snap models.CatalogSnapshot
}

func (s staticCatalog) Snapshot() (models.CatalogSnapshot, error) {
	return s.snap, nil
}
