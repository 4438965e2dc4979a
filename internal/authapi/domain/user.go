package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role names form an open string set; these two are the ones the platform
// currently assigns meaning to.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Account is the credential-store row for one user. Salt and PasswordDigest
// are created together at registration and never edited afterwards; there is
// no password-change or rename flow.
type Account struct {
	ID             uuid.UUID
	Username       string
	Salt           []byte
	PasswordDigest []byte
	Role           string
	CreatedAt      time.Time
}
