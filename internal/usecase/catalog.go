package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
)

// CatalogUseCase encapsulates product catalog operations.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns products matching an optional category/search filter.
func (u *CatalogUseCase) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

// Get fetches a single product by id.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Create adds a product to the catalog.
func (u *CatalogUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, product)
}

// Update replaces editable product fields.
func (u *CatalogUseCase) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if product.ID == "" {
		return nil, domainErrors.ErrNotFound
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, product)
}

// Delete removes a product from the catalog.
func (u *CatalogUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domainErrors.ErrNotFound
	}
	return u.products.Delete(ctx, id)
}

func validateProduct(product model.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return domainErrors.ErrInvalidProduct
	}
	if product.Price <= 0 || product.CountInStock < 0 {
		return domainErrors.ErrInvalidProduct
	}
	return nil
}
