// Package security implements the password-custody primitives as adapters
// so the application layer stays crypto-library agnostic.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	digestSize = 32

	// DefaultIterations balances login latency against brute-force cost.
	// Tests pass a lower count through the constructor.
	DefaultIterations = 120_000
)

// PBKDF2Hasher derives a deterministic one-way digest from password+salt.
// The salt lives in its own account column, so the digest function must be
// a pure function of (password, salt); that rules out schemes that embed
// their salt in the output.
type PBKDF2Hasher struct {
	iterations int
}

// NewPBKDF2Hasher creates a hasher with a configurable work factor.
func NewPBKDF2Hasher(iterations int) *PBKDF2Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PBKDF2Hasher{iterations: iterations}
}

// NewSalt returns a fresh random salt, never reused across accounts.
func (h *PBKDF2Hasher) NewSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

func (h *PBKDF2Hasher) Digest(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, digestSize, sha256.New)
}

// Verify recomputes the digest and compares in constant time.
func (h *PBKDF2Hasher) Verify(password string, salt, digest []byte) bool {
	computed := h.Digest(password, salt)
	return subtle.ConstantTimeCompare(computed, digest) == 1
}
