package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tiendita-app/tiendita/internal/adapter/api/middleware"
	"github.com/tiendita-app/tiendita/internal/domain"
)

// ProductHandler serves the catalog reads the storefront needs before ordering.
type ProductHandler struct {
	products domain.ProductRepository
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products domain.ProductRepository, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

type productResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	ImageURL string      `json:"image_url"`
	Price    json.Number `json:"price"`
	Stock    int         `json:"stock"`
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		h.logger.Error("product handler reached without a resolved tenant")
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	products, err := h.products.ListAvailable(r.Context(), tenant.ID)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		respondWithError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Price:    json.Number(p.Price.String()),
			Stock:    p.Stock,
		})
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]any{"products": out})
}
