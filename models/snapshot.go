package models

import "fmt"

// CatalogSnapshot is an immutable, ordered view of the catalog.
// The zero value is an empty catalog.
type CatalogSnapshot struct {
	products []Product
	byID     map[int64]int
}

// NewCatalogSnapshot validates every product and builds a snapshot preserving input order.
// The input slice is copied.
func NewCatalogSnapshot(products []Product) (CatalogSnapshot, error) {
	s := CatalogSnapshot{
		products: make([]Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for i, p := range products {
		if err := Validate(p); err != nil {
			return CatalogSnapshot{}, fmt.Errorf("%w: record %d: %v", ErrInvalidProduct, i, err)
		}
		if _, ok := s.byID[p.ID]; ok {
			return CatalogSnapshot{}, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		s.byID[p.ID] = i
		s.products[i] = p
	}
	return s, nil
}

func (s CatalogSnapshot) Len() int {
	return len(s.products)
}

// Products returns a copy of all products in catalog order.
func (s CatalogSnapshot) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s CatalogSnapshot) ByID(id int64) (Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Apply runs the filter engine against the full snapshot.
func (s CatalogSnapshot) Apply(criteria FilterCriteria) []Product {
	return ApplyFilter(s.products, criteria)
}

// Categories lists the distinct categories in first-seen order.
func (s CatalogSnapshot) Categories() []Category {
	index := make(map[string]int)
	var out []Category
	for _, p := range s.products {
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, Category{Name: p.Category, Count: 1})
	}
	return out
}
