package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	order    []uuid.UUID
}

func NewProductRepository() ports.ProductRepository {
	return &ProductRepository{
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (r *ProductRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.active(search)

	if offset >= len(matched) {
		return []domain.Product{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *ProductRepository) Count(ctx context.Context, search string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.active(search))), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	product := p
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrProductNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	r.products[id] = p
	return nil
}

// active returns non-deleted products in insertion order, filtered by the
// case-insensitive name search when one is given.
func (r *ProductRepository) active(search string) []domain.Product {
	needle := strings.ToLower(search)

	var matched []domain.Product
	for _, id := range r.order {
		p := r.products[id]
		if p.DeletedAt != nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
