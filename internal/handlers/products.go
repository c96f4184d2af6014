package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/softshop/internal/catalog"
)

// ProductService is the catalog surface used by the product routes.
type ProductService interface {
	CreateProduct(ctx context.Context, in catalog.CreateProductInput) (*catalog.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	ChangeSlug(ctx context.Context, productID, slug string) (string, error)
}

// Products serves the public product API.
type Products struct {
	svc    ProductService
	logger *slog.Logger
}

// NewProducts creates the product handler.
func NewProducts(svc ProductService, log *slog.Logger) *Products {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Products{svc: svc, logger: log}
}

// Routes implements softshop.Handler.
func (h *Products) Routes(r chi.Router) {
	r.Post("/api/products", h.create)
	r.Get("/api/products/{slug}", h.bySlug)
}

func (h *Products) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Products) bySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
