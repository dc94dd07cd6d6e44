package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"-"`
}

// ProductPage mirrors the paginator shape clients consume: the page of rows
// plus enough metadata to walk the full result set.
type ProductPage struct {
	Data        []Product `json:"data"`
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	PerPage     int       `json:"per_page"`
	Total       int64     `json:"total"`
}

// NewProductPage computes last_page from the total row count. An empty result
// set still has one page.
func NewProductPage(products []Product, page, perPage int, total int64) *ProductPage {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if products == nil {
		products = []Product{}
	}
	return &ProductPage{
		Data:        products,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}
