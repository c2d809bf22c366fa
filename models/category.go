package models

// Category is a distinct product category found in the catalog,
// together with the number of products carrying it.
type Category struct {
	Name  string
	Count int
}
