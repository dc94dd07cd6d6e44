package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	input := ports.ListProductsInput{
		Search: r.URL.Query().Get("search"),
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil {
		input.PerPage = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		input.Page = v
	}

	page, err := h.service.List(r.Context(), input)
	if err != nil {
		respondProductError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Products retrieved successfully", page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondProductError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input ports.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondProductError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input ports.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondProductError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondProductError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Product deleted successfully", nil)
}

func respondProductError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	if errors.Is(err, domain.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	slog.Error("product request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
