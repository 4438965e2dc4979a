// Package handlers is the server-rendered front end. It never checks the
// token signature itself: authorization is owned by the resource services,
// and the pages only use claims to decide what to show.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartrx/smartrx/internal/platform/httpx"
	"github.com/smartrx/smartrx/internal/web/apiclient"
	"github.com/smartrx/smartrx/internal/web/session"
)

type Handler struct {
	auth       *apiclient.AuthClient
	drugs      *apiclient.DrugsClient
	sessions   session.Store
	sessionTTL time.Duration
	renderer   *Renderer
}

// NewHandler wires the front end. sessionTTL should match the token TTL so
// sessions and tokens age out together.
func NewHandler(auth *apiclient.AuthClient, drugs *apiclient.DrugsClient, sessions session.Store, sessionTTL time.Duration) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		auth:       auth,
		drugs:      drugs,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		renderer:   renderer,
	}, nil
}

func webLogger() *slog.Logger {
	return slog.Default().With(
		"service", "smartrx-web",
		"module", "handlers",
	)
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.Recover(webLogger()))
	r.Use(httpx.AccessLog(webLogger()))
	r.Use(h.loadIdentity)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/drugs", http.StatusSeeOther)
	})

	r.Route("/account", func(r chi.Router) {
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Get("/register", h.registerPage)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
	})

	r.Route("/drugs", func(r chi.Router) {
		r.Use(requireLogin)
		r.Get("/", h.drugsIndex)
		r.Get("/search", h.drugsSearch)
		r.Get("/create", h.drugCreatePage)
		r.Post("/create", h.drugCreate)
		r.Get("/{id}", h.drugDetails)
		r.Get("/{id}/edit", h.drugEditPage)
		r.Post("/{id}/edit", h.drugEdit)
		r.Post("/{id}/delete", h.drugDelete)
	})

	return r
}
