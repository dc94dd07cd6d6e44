package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input ports.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Register(r.Context(), input)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Registration successful", token)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input ports.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), input)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", token)
}

func respondAuthError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	slog.Error("auth request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
