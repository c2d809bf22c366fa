package sources

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/storefront/models"
)

const selectProducts = `SELECT id, name, category, price, description, image FROM products ORDER BY id`

// SQLSource reads the products table through database/sql.
// It works with any registered driver; postgres and mysql are linked in.
type SQLSource struct {
	db     *sql.DB
	driver string
}

func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

func (s *SQLSource) Name() string {
	return "sql:" + s.driver
}

func (s *SQLSource) Fetch(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var price string
		var category, description, image sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &category, &price, &description, &image); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("product %d: price %q: %w", p.ID, price, err)
		}
		p.Category = category.String
		p.Description = description.String
		p.Image = image.String
		products = append(products, p)
	}
	return products, rows.Err()
}
