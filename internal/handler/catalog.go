package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/service"
)

// CatalogHandler handles product browsing requests.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleList returns the product list.
// GET /api/products?type=GAME&status=ACTIVE
// Response: {"products": [...]}
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")

	products, err := h.catalog.List(r.Context(), typ, status)
	if err != nil {
		slog.Error("list products", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": toProductDTOs(products),
	})
}

// HandleDetail returns an active product with its denominations.
// GET /api/products/{slug}
// Response: {"product": {...}}
func (h *CatalogHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.catalog.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Product slug is required.")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found.")
			return
		}
		slog.Error("get product", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product": toProductDetailDTO(product),
	})
}
