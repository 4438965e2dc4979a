package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/smartrx/smartrx/internal/web/apiclient"
	"github.com/smartrx/smartrx/internal/web/session"
)

type credentialsForm struct {
	Username string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, "login.html", viewData{
		Identity: identityFromContext(r.Context()),
		Data:     credentialsForm{},
	})
}

// login exchanges the posted credentials for a token, then opens a fresh
// server-side session holding it. The browser only ever receives the
// opaque session id.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, http.StatusBadRequest, "login.html", viewData{
			Error: "invalid form submission",
			Data:  credentialsForm{},
		})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	result, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		message := "login is unavailable right now"
		status := http.StatusBadGateway
		if errors.Is(err, apiclient.ErrInvalidCredentials) {
			message = "invalid username or password"
			status = http.StatusUnauthorized
		} else {
			webLogger().ErrorContext(r.Context(), "login call failed", "error", err.Error())
		}
		h.renderer.render(w, status, "login.html", viewData{
			Error: message,
			Data:  credentialsForm{Username: username},
		})
		return
	}

	sessionID := uuid.NewString()
	record := session.Session{
		Token:    result.Token,
		Username: result.Username,
		Role:     result.Role,
	}
	if err := h.sessions.Put(r.Context(), sessionID, record, h.sessionTTL); err != nil {
		webLogger().ErrorContext(r.Context(), "session create failed", "error", err.Error())
		h.renderer.render(w, http.StatusInternalServerError, "login.html", viewData{
			Error: "login is unavailable right now",
			Data:  credentialsForm{Username: username},
		})
		return
	}

	h.setSessionCookie(w, sessionID)
	webLogger().InfoContext(r.Context(), "web login",
		"operation", "login",
		"outcome", "success",
		"username", result.Username,
	)
	http.Redirect(w, r, "/drugs", http.StatusSeeOther)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, "register.html", viewData{
		Identity: identityFromContext(r.Context()),
		Data:     credentialsForm{},
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, http.StatusBadRequest, "register.html", viewData{
			Error: "invalid form submission",
			Data:  credentialsForm{},
		})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// Self-service registration always creates a regular user. Admin
	// accounts are provisioned through the auth API directly.
	_, err := h.auth.Register(r.Context(), username, password, "")
	if err != nil {
		message := "registration is unavailable right now"
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, apiclient.ErrConflict):
			message = "that username is already taken"
			status = http.StatusConflict
		case errors.Is(err, apiclient.ErrInvalidInput):
			message = "username and password are required"
			status = http.StatusBadRequest
		default:
			webLogger().ErrorContext(r.Context(), "register call failed", "error", err.Error())
		}
		h.renderer.render(w, status, "register.html", viewData{
			Error: message,
			Data:  credentialsForm{Username: username},
		})
		return
	}

	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

// logout deletes the server-side session and expires the cookie. The token
// inside the session dies with it; nothing needs revoking downstream.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			webLogger().ErrorContext(r.Context(), "session delete failed", "error", err.Error())
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}
