package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/smartrx/smartrx/internal/authapi/application"
	"github.com/smartrx/smartrx/internal/authapi/domain"
	"github.com/smartrx/smartrx/internal/platform/httpx"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := httpx.DecodeBody(r, &req); err != nil {
		writeMappedError(r.Context(), w, "register", domain.ErrInvalidInput)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "register", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := httpx.DecodeBody(r, &req); err != nil {
		writeMappedError(r.Context(), w, "login", domain.ErrInvalidInput)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// mapDomainError translates sentinel errors to transport codes. Credential
// failures collapse into one 401 regardless of cause.
func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT", "username already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
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
