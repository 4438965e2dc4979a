package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/smartrx/smartrx/internal/platform/token"
	"github.com/smartrx/smartrx/internal/web/session"
)

const sessionCookie = "smartrx_session"

// Identity is the signed-in user as seen by page handlers. It is re-derived
// on every request from the session's token claims rather than cached, so
// page identity can never outlive or drift from the token.
type Identity struct {
	Username string
	Role     string
	Token    string
}

func (id *Identity) IsAdmin() bool { return id != nil && id.Role == "Admin" }

type identityKey struct{}

// identityFromContext returns nil for anonymous requests.
func identityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// loadIdentity resolves the session cookie into an Identity. A missing
// cookie, unknown session, undecodable token, or expired token all resolve
// to anonymous; expired and broken sessions are dropped from the store so
// the next request is clean.
func (h *Handler) loadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := h.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				webLogger().ErrorContext(r.Context(), "session lookup failed", "error", err.Error())
			}
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		claims, err := token.DecodeUnverified(sess.Token)
		if err != nil || claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
			_ = h.sessions.Delete(r.Context(), cookie.Value)
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		identity := &Identity{
			Username: claims.Username(),
			Role:     claims.Role,
			Token:    sess.Token,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
	})
}

// requireLogin redirects anonymous requests to the login page.
func requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/account/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
