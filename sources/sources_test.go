package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/models"
)

const catalogJSON = `[
  {"id": 1, "name": "Red Shirt", "category": "Category A", "price": 20, "description": "cotton", "image": "/img/1.png"},
  {"id": 2, "name": "Blue Hat", "category": "Category B", "price": "10.50", "description": "wool", "image": "/img/2.png"}
]`

func assertCatalog(t *testing.T, products []models.Product) {
	t.Helper()
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Red Shirt", products[0].Name)
	assert.Equal(t, "Category A", products[0].Category)
	assert.Equal(t, "20", products[0].Price.String())
	assert.Equal(t, "/img/1.png", products[0].Image)
	assert.Equal(t, "10.5", products[1].Price.String())
	assert.Equal(t, "wool", products[1].Description)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o600))

	src := NewFileSource(path)
	assert.Equal(t, "file:"+path, src.Name())

	products, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assertCatalog(t, products)

	_, err = NewFileSource(filepath.Join(dir, "missing.json")).Fetch(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":`), 0o600))
	_, err = NewFileSource(bad).Fetch(context.Background())
	assert.ErrorContains(t, err, "decode catalog")
}

func TestHTTPSource(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "Success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(catalogJSON))
			},
		},
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: "unexpected status 500",
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			wantErr: "decode catalog",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			products, err := NewHTTPSource(srv.URL, srv.Client()).Fetch(context.Background())
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assertCatalog(t, products)
		})
	}
}

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error
	calls          int
}

func (m *MockProductRepo) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SourceProducts, nil
}

func TestRepositorySource(t *testing.T) {
	repo := &MockProductRepo{SourceProducts: []models.Product{{ID: 1, Name: "Red Shirt"}}}
	src := NewRepositorySource(repo)

	products, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "gorm", src.Name())

	repo.Err = errors.New("db down")
	_, err = src.Fetch(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestOpen(t *testing.T) {
	src, closeFn, err := Open(config.Config{CatalogSource: config.SourceFile, CatalogPath: "data.json"})
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)
	assert.NoError(t, closeFn())

	src, closeFn, err = Open(config.Config{CatalogSource: config.SourceHTTP, CatalogURL: "http://localhost/data.json"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)
	assert.NoError(t, closeFn())

	// sql.Open does not connect, so this only checks the driver is registered.
	src, closeFn, err = Open(config.Config{CatalogSource: config.SourceSQL, SQLDriver: "mysql", DatabaseURL: "user:pass@tcp(127.0.0.1:3306)/shop"})
	require.NoError(t, err)
	assert.Equal(t, "sql:mysql", src.Name())
	assert.NoError(t, closeFn())

	src, closeFn, err = Open(config.Config{CatalogSource: config.SourceSQL, SQLDriver: "postgres", DatabaseURL: "postgres://localhost/shop?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "sql:postgres", src.Name())
	assert.NoError(t, closeFn())

	_, closeFn, err = Open(config.Config{CatalogSource: "ftp"})
	assert.Error(t, err)
	assert.NoError(t, closeFn())
}
