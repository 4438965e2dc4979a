// Package http is the HTTP adapter for the auth API: registration and
// login, plus health and API-doc endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartrx/smartrx/internal/authapi/application"
	"github.com/smartrx/smartrx/internal/platform/httpx"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func httpLogger() *slog.Logger {
	return slog.Default().With(
		"service", "smartrx-authapi",
		"module", "http",
	)
}

// NewRouter registers routes and the shared middleware stack.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.Recover(httpLogger()))
	r.Use(httpx.AccessLog(httpLogger()))

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.healthz)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/", handler.swaggerUI)
	r.Get("/swagger/openapi.yaml", handler.swaggerSpec)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
