// Package http is the HTTP adapter for the drugs API. Every catalog
// endpoint sits behind the token validator; mutations additionally require
// the Admin role.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartrx/smartrx/internal/drugsapi/application"
	"github.com/smartrx/smartrx/internal/platform/httpx"
	"github.com/smartrx/smartrx/internal/platform/token"
)

const roleAdmin = "Admin"

type Handler struct {
	service   *application.Service
	validator *token.Validator
}

func NewHandler(service *application.Service, validator *token.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

func httpLogger() *slog.Logger {
	return slog.Default().With(
		"service", "smartrx-drugsapi",
		"module", "http",
	)
}

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

	r.Route("/api/drugs", func(r chi.Router) {
		r.Use(handler.requireAuth)

		r.Get("/", handler.list)
		r.Get("/search", handler.search)
		r.Get("/{id}", handler.get)
		r.Get("/{id}/details", handler.details)

		r.Group(func(r chi.Router) {
			r.Use(requireRole(roleAdmin))
			r.Post("/", handler.create)
			r.Put("/{id}", handler.update)
			r.Delete("/{id}", handler.remove)
		})
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
