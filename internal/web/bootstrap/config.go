// Package bootstrap resolves front-end configuration and wires the runtime.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smartrx/smartrx/internal/platform/configx"
)

// Config is the resolved runtime configuration for the web front end. The
// front end never holds the token signing secret; it only knows where the
// two APIs live and how long a browser session may last.
type Config struct {
	HTTPPort int

	AuthAPIURL  string
	DrugsAPIURL string

	RedisURL   string
	SessionTTL time.Duration
}

type configFile struct {
	Service struct {
		HTTPPort int `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		AuthAPIURL  string `yaml:"auth_api_url"`
		DrugsAPIURL string `yaml:"drugs_api_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Session struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"session"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		HTTPPort:    5000,
		AuthAPIURL:  "http://localhost:5001",
		DrugsAPIURL: "http://localhost:5002",
		SessionTTL:  30 * time.Minute,
	}

	if raw, err := os.ReadFile(path); err == nil {
		var f configFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if f.Service.HTTPPort != 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.AuthAPIURL != "" {
			cfg.AuthAPIURL = f.Dependencies.AuthAPIURL
		}
		if f.Dependencies.DrugsAPIURL != "" {
			cfg.DrugsAPIURL = f.Dependencies.DrugsAPIURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Session.TTLMinutes != 0 {
			cfg.SessionTTL = time.Duration(f.Session.TTLMinutes) * time.Minute
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.HTTPPort = configx.EnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.AuthAPIURL = configx.EnvOrDefault("AUTH_API_URL", cfg.AuthAPIURL)
	cfg.DrugsAPIURL = configx.EnvOrDefault("DRUGS_API_URL", cfg.DrugsAPIURL)
	cfg.RedisURL = configx.EnvOrDefault("REDIS_URL", cfg.RedisURL)
	if minutes := configx.EnvInt("SESSION_TTL_MINUTES", int(cfg.SessionTTL.Minutes())); minutes > 0 {
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	if cfg.AuthAPIURL == "" || cfg.DrugsAPIURL == "" {
		return Config{}, errors.New("auth and drugs api urls are required")
	}

	return cfg, nil
}
