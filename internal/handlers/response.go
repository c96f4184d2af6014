package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/middlewares"
)

// Max accepted request body.
const maxBodyBytes = 1 << 20

// envelope is the JSON shape of every API response.
type envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: status < http.StatusBadRequest, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: msg})
}

// errorStatus maps catalog errors to an HTTP status and a client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, catalog.ErrSlugUnavailable):
		return http.StatusConflict, catalog.ErrSlugUnavailable.Error()
	case errors.Is(err, catalog.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	writeError(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", catalog.ErrInvalidInput)
	}
	return nil
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// RecoverResponder writes the JSON 500 after a recovered panic.
func RecoverResponder(w http.ResponseWriter, _ *http.Request, _ *middlewares.PanicError) {
	writeError(w, http.StatusInternalServerError, "internal server error")
}
