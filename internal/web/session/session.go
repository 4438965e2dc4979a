// Package session implements the server-side bridge between the browser's
// cookie session and the bearer token used for service calls. The browser
// only ever sees an opaque session id; the token itself stays server-side.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Session is one browser session's record: the identity token obtained at
// login plus denormalized fields for page rendering. It is created at
// login, deleted at logout, and never shared across sessions.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store holds session records keyed by opaque session id. Implementations
// must expire records after the TTL passed to Put.
type Store interface {
	Put(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	// Delete is idempotent: removing an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
