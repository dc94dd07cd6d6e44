package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// priceFormat accepts a non-negative decimal with at most two fractional
// digits. Exponent forms like 1e3 are rejected on purpose.
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

type ProductService struct {
	repo ports.ProductRepository
}

func NewProductService(repo ports.ProductRepository) ports.ProductService {
	return &ProductService{
		repo: repo,
	}
}

func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) (*domain.ProductPage, error) {
	perPage := input.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	page := input.Page
	if page <= 0 {
		page = 1
	}

	total, err := s.repo.Count(ctx, input.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * perPage
	products, err := s.repo.List(ctx, input.Search, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return domain.NewProductPage(products, page, perPage, total), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.find(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	verr := &domain.ValidationError{}

	if input.Name == "" {
		verr.Add("name", "Product name is required")
	} else if len(input.Name) > 255 {
		verr.Add("name", "Product name cannot exceed 255 characters")
	}

	price, _ := validatePrice(input.Price, verr, "Product price is required")
	if verr.HasErrors() {
		return nil, verr
	}

	product := &domain.Product{
		Name:  input.Name,
		Price: price,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}

	if input.Name != nil {
		if *input.Name == "" {
			verr.Add("name", "Product name cannot be empty when provided")
		} else if len(*input.Name) > 255 {
			verr.Add("name", "Product name cannot exceed 255 characters")
		}
	}

	var price float64
	if input.Price != nil {
		price, _ = validatePrice(input.Price, verr, "Product price cannot be empty when provided")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	// Only supplied fields change.
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = price
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// find resolves id to an active product. An unparseable id, a missing row and
// a soft-deleted row all look the same to the caller.
func (s *ProductService) find(ctx context.Context, id string) (*domain.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// validatePrice checks the raw JSON literal before parsing it, so 99.999 is
// rejected instead of being silently rounded. Returns the parsed value and
// whether it is usable.
func validatePrice(raw *json.Number, verr *domain.ValidationError, requiredMsg string) (float64, bool) {
	if raw == nil {
		verr.Add("price", requiredMsg)
		return 0, false
	}

	literal := raw.String()
	if literal == "" {
		verr.Add("price", requiredMsg)
		return 0, false
	}

	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		verr.Add("price", "Price must be a number")
		return 0, false
	}
	if value < 0 {
		verr.Add("price", "Price cannot be negative")
		return 0, false
	}
	if !priceFormat.MatchString(literal) {
		verr.Add("price", "Price must have maximum 2 decimal places")
		return 0, false
	}

	return value, true
}
