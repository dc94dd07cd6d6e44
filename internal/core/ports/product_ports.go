package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/domain"
)

// ProductRepository is the storage contract for products. Every read filters
// out soft-deleted rows; only SoftDelete touches deleted_at.
type ProductRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]domain.Product, error)
	Count(ctx context.Context, search string) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type ListProductsInput struct {
	Search  string
	PerPage int
	Page    int
}

// CreateProductInput keeps Price as the raw JSON literal so the service can
// reject values with more than two decimal places before parsing.
type CreateProductInput struct {
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       *json.Number `json:"price"`
}

// UpdateProductInput uses pointers throughout: a nil field was not supplied
// and leaves the stored value unchanged.
type UpdateProductInput struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Price       *json.Number `json:"price"`
}

type ProductService interface {
	List(ctx context.Context, input ListProductsInput) (*domain.ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
