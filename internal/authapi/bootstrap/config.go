// Package bootstrap resolves auth API configuration and wires the runtime.
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

// Config is the resolved runtime configuration for the auth API.
type Config struct {
	HTTPPort int
	GRPCPort int

	// DatabaseURL may be empty, in which case the in-memory account store is
	// used; that is a local/dev convenience, not a deployment mode.
	DatabaseURL string
	MaxDBConns  int

	DigestIterations int

	Token token.Config
}

// configFile mirrors the YAML schema under configs/.
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
	Security struct {
		DigestIterations int `yaml:"digest_iterations"`
	} `yaml:"security"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// A missing or incomplete signing configuration is a startup-time error; the
// service must refuse to accept traffic rather than fail per request.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		HTTPPort:   5001,
		GRPCPort:   9001,
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
		cfg.DigestIterations = f.Security.DigestIterations
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.HTTPPort = configx.EnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = configx.EnvInt("GRPC_PORT", cfg.GRPCPort)
	cfg.DatabaseURL = configx.EnvOrDefault("DB_URL", configx.EnvOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.MaxDBConns = configx.EnvInt("DB_MAX_CONNS", cfg.MaxDBConns)
	cfg.DigestIterations = configx.EnvInt("DIGEST_ITERATIONS", cfg.DigestIterations)

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
