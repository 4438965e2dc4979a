package domain

import "errors"

var (
	ErrNotFound     = errors.New("drug not found")
	ErrInvalidInput = errors.New("invalid input")
)
