package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tiendita-app/tiendita/internal/adapter/api/middleware"
	"github.com/tiendita-app/tiendita/internal/domain"
	"github.com/tiendita-app/tiendita/internal/usecase"
)

// AuthUseCase is the slice of the auth service the handler needs.
type AuthUseCase interface {
	Login(ctx context.Context, tenant *domain.Tenant, email, password string) (string, error)
}

// AuthHandler handles login requests.
type AuthHandler struct {
	useCase AuthUseCase
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(uc AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{useCase: uc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. The account lookup is scoped to the
// tenant resolved from the host/header, so the same email can exist
// independently under different tenants.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		h.logger.Error("login handler reached without a resolved tenant")
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, h.logger, http.StatusBadRequest, "email and password are required")
		return
	}

	tok, err := h.useCase.Login(r.Context(), tenant, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondWithError(w, h.logger, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"token": tok})
}
