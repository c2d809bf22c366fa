package models

import "github.com/shopspring/decimal"

func newTestProduct(id int64, name, category string, price float64) Product {
	return Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromFloat(price),
	}
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
