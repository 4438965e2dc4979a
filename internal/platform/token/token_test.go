package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:   "unit-test-secret",
		Issuer:   "smartrx-auth",
		Audience: "smartrx-services",
		TTL:      30 * time.Minute,
	}
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"missing secret":   func(c *Config) { c.Secret = "" },
		"missing issuer":   func(c *Config) { c.Issuer = "" },
		"missing audience": func(c *Config) { c.Audience = "" },
		"zero ttl":         func(c *Config) { c.TTL = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, testConfig().Validate())
}

func TestMintAndValidate(t *testing.T) {
	cfg := testConfig()
	signer, err := NewSigner(cfg)
	require.NoError(t, err)
	validator, err := NewValidator(cfg)
	require.NoError(t, err)

	raw, err := signer.Mint("alice", "Admin", time.Now())
	require.NoError(t, err)

	claims, err := validator.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestValidateRejectsMismatchedConfig(t *testing.T) {
	cfg := testConfig()
	signer, err := NewSigner(cfg)
	require.NoError(t, err)
	raw, err := signer.Mint("alice", "User", time.Now())
	require.NoError(t, err)

	cases := map[string]func(*Config){
		"different secret":   func(c *Config) { c.Secret = "other-secret" },
		"different issuer":   func(c *Config) { c.Issuer = "other-issuer" },
		"different audience": func(c *Config) { c.Audience = "other-audience" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			other := testConfig()
			mutate(&other)
			validator, err := NewValidator(other)
			require.NoError(t, err)
			_, err = validator.Validate(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	signer, err := NewSigner(cfg)
	require.NoError(t, err)
	validator, err := NewValidator(cfg)
	require.NoError(t, err)

	// Minted far enough in the past that now > iat+TTL even with clock skew.
	raw, err := signer.Mint("alice", "User", time.Now().Add(-2*cfg.TTL))
	require.NoError(t, err)

	_, err = validator.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	validator, err := NewValidator(testConfig())
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := validator.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestDecodeUnverified(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)
	raw, err := signer.Mint("bob", "User", time.Now())
	require.NoError(t, err)

	claims, err := DecodeUnverified(raw)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username())
	assert.Equal(t, "User", claims.Role)
}
