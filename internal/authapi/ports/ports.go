// Package ports defines the interfaces the auth application layer depends
// on, keeping crypto and storage choices at the adapter level.
package ports

import (
	"context"

	"github.com/smartrx/smartrx/internal/authapi/domain"
)

// AccountRepository persists credential-store accounts.
// Create must enforce username uniqueness atomically at the point of insert
// and return domain.ErrConflict on a duplicate; a prior existence check is
// not sufficient under concurrent registration.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	NewSalt() ([]byte, error)
	Digest(password string, salt []byte) []byte
	Verify(password string, salt, digest []byte) bool
}
