// Package configx holds the env-override helpers shared by the per-service
// bootstrap packages. Resolution order everywhere is defaults -> file -> env.
package configx

import (
	"os"
	"strconv"
)

// EnvOrDefault returns an env var when present, otherwise the fallback.
func EnvOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// EnvInt parses integer env vars with a safe fallback on empty/invalid values.
func EnvInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
