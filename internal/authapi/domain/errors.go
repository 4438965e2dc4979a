package domain

import "errors"

var (
	// ErrInvalidCredentials hides whether the username or the password failed.
	// The two cases must stay indistinguishable to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict is returned when a username is already registered.
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)
