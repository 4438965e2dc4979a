package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
	"github.com/smartrx/smartrx/internal/platform/httpx"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	drugs, err := h.service.List(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "list_drugs", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drugs)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	drugs, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeMappedError(r.Context(), w, "search_drugs", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drugs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := drugID(r)
	if err != nil {
		writeMappedError(r.Context(), w, "get_drug", err)
		return
	}
	drug, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeMappedError(r.Context(), w, "get_drug", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drug)
}

// details mirrors the plain get; it exists as a separate endpoint so the
// full record can later diverge from the list projection.
func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	id, err := drugID(r)
	if err != nil {
		writeMappedError(r.Context(), w, "drug_details", err)
		return
	}
	drug, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeMappedError(r.Context(), w, "drug_details", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drug)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var drug domain.Drug
	if err := httpx.DecodeBody(r, &drug); err != nil {
		writeMappedError(r.Context(), w, "create_drug", domain.ErrInvalidInput)
		return
	}
	created, err := h.service.Create(r.Context(), drug)
	if err != nil {
		writeMappedError(r.Context(), w, "create_drug", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := drugID(r)
	if err != nil {
		writeMappedError(r.Context(), w, "update_drug", err)
		return
	}
	var drug domain.Drug
	if err := httpx.DecodeBody(r, &drug); err != nil {
		writeMappedError(r.Context(), w, "update_drug", domain.ErrInvalidInput)
		return
	}
	drug.ID = id
	if err := h.service.Update(r.Context(), drug); err != nil {
		writeMappedError(r.Context(), w, "update_drug", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := drugID(r)
	if err != nil {
		writeMappedError(r.Context(), w, "delete_drug", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeMappedError(r.Context(), w, "delete_drug", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func drugID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "drug not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	statusCode, code, message := mapDomainError(err)
	fields := []any{
		"operation", operation,
		"outcome", "failure",
		"status_code", statusCode,
		"error_code", code,
		"request_id", httpx.RequestIDFromContext(ctx),
		"error", err.Error(),
	}
	if statusCode >= 500 {
		httpLogger().ErrorContext(ctx, "http operation failed", fields...)
	} else {
		httpLogger().WarnContext(ctx, "http operation failed", fields...)
	}
	httpx.WriteError(w, statusCode, code, message)
}
