package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterCriteria is the current category and search selection.
// Empty fields disable the corresponding filter.
type FilterCriteria struct {
	Category string
	Query    string
}

func (c FilterCriteria) IsEmpty() bool {
	return c.Category == "" && c.Query == ""
}

// ApplyFilter keeps the products whose category equals criteria.Category exactly and whose
// name contains criteria.Query ignoring case. Both filters are ANDed. The result is a new
// slice in input order; products is never modified.
func ApplyFilter(products []Product, criteria FilterCriteria) []Product {
	fold := cases.Fold()
	query := fold.String(criteria.Query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}
		if query != "" && !strings.Contains(fold.String(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
