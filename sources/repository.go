package sources

import (
	"context"

	"github.com/mytheresa/storefront/models"
)

// ProductLister is satisfied by models.ProductsRepository.
type ProductLister interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// RepositorySource loads the catalog through the gorm products repository.
type RepositorySource struct {
	repo ProductLister
}

func NewRepositorySource(repo ProductLister) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Name() string {
	return "gorm"
}

func (s *RepositorySource) Fetch(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAllProducts(ctx)
}
