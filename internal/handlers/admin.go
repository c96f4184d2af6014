package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/pkg/job"
)

// Repeated backfill requests inside this window collapse into one job.
const backfillDedupWindow = time.Minute

// Enqueuer schedules background tasks.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// Admin serves catalog maintenance routes.
type Admin struct {
	svc    ProductService
	jobs   Enqueuer
	logger *slog.Logger
}

// NewAdmin creates the admin handler.
func NewAdmin(svc ProductService, jobs Enqueuer, log *slog.Logger) *Admin {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Admin{svc: svc, jobs: jobs, logger: log}
}

// Routes implements softshop.Handler.
func (h *Admin) Routes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Put("/products/{id}/slug", h.changeSlug)
		r.Post("/slugs/backfill", h.backfill)
	})
}

type changeSlugRequest struct {
	Slug string `json:"slug"`
}

type changeSlugResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func (h *Admin) changeSlug(w http.ResponseWriter, r *http.Request) {
	var req changeSlugRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	id := chi.URLParam(r, "id")
	s, err := h.svc.ChangeSlug(r.Context(), id, req.Slug)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, changeSlugResponse{ID: id, Slug: s})
}

type backfillResponse struct {
	Task   string `json:"task"`
	Status string `json:"status"`
}

func (h *Admin) backfill(w http.ResponseWriter, r *http.Request) {
	err := h.jobs.Enqueue(r.Context(), catalog.BackfillTaskName, catalog.BackfillPayload{},
		job.UniqueFor(backfillDedupWindow),
	)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue slug backfill", slog.Any("error", err))
		writeError(w, http.StatusServiceUnavailable, "could not schedule backfill, please retry")
		return
	}

	h.logger.InfoContext(r.Context(), "slug backfill enqueued")
	writeJSON(w, http.StatusAccepted, backfillResponse{Task: catalog.BackfillTaskName, Status: "queued"})
}
