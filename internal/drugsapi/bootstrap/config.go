// Package bootstrap resolves drugs API configuration and wires the runtime.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smartrx/smartrx/internal/platform/configx"
	"github.com/smartrx/smartrx/internal/platform/token"
)

// Config is the resolved runtime configuration for the drugs API. The token
// section must match the auth API's signing configuration; it is the only
// trust relationship between the two services.
type Config struct {
	HTTPPort int
	GRPCPort int

	DatabaseURL string
	MaxDBConns  int

	Token token.Config
}

type configFile struct {
	Service struct {
		HTTPPort int `yaml:"http_port"`
		GRPCPort int `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		MaxConns    int    `yaml:"max_conns"`
	} `yaml:"dependencies"`
	JWT struct {
		Secret        string `yaml:"secret"`
		Issuer        string `yaml:"issuer"`
		Audience      string `yaml:"audience"`
		ExpiryMinutes int    `yaml:"expiry_minutes"`
	} `yaml:"jwt"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		HTTPPort:   5002,
		GRPCPort:   9002,
		MaxDBConns: 10,
	}

	if raw, err := os.ReadFile(path); err == nil {
		var f configFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if f.Service.HTTPPort != 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort != 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.MaxConns != 0 {
			cfg.MaxDBConns = f.Dependencies.MaxConns
		}
		cfg.Token.Secret = f.JWT.Secret
		cfg.Token.Issuer = f.JWT.Issuer
		cfg.Token.Audience = f.JWT.Audience
		cfg.Token.TTL = time.Duration(f.JWT.ExpiryMinutes) * time.Minute
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.HTTPPort = configx.EnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = configx.EnvInt("GRPC_PORT", cfg.GRPCPort)
	cfg.DatabaseURL = configx.EnvOrDefault("DB_URL", configx.EnvOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.MaxDBConns = configx.EnvInt("DB_MAX_CONNS", cfg.MaxDBConns)

	cfg.Token.Secret = configx.EnvOrDefault("JWT_SECRET", cfg.Token.Secret)
	cfg.Token.Issuer = configx.EnvOrDefault("JWT_ISSUER", cfg.Token.Issuer)
	cfg.Token.Audience = configx.EnvOrDefault("JWT_AUDIENCE", cfg.Token.Audience)
	if minutes := configx.EnvInt("JWT_EXPIRY_MINUTES", int(cfg.Token.TTL.Minutes())); minutes > 0 {
		cfg.Token.TTL = time.Duration(minutes) * time.Minute
	}

	if err := cfg.Token.Validate(); err != nil {
		return Config{}, fmt.Errorf("jwt configuration: %w", err)
	}

	return cfg, nil
}
