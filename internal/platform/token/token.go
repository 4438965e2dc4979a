// Package token mints and validates the signed identity tokens exchanged
// between the auth API and every resource service. Validation is a pure
// function of (token, config, now): no lookup, no call back to the issuer,
// so any number of validators can run independently.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every validation failure: bad signature, wrong
// issuer or audience, expiry, malformed input. Callers must not surface
// which check failed; the specific cause is only for internal logs.
var ErrInvalidToken = errors.New("invalid token")

// Config is the signing configuration shared out-of-band between the issuer
// and all validators. It is immutable after startup and injected explicitly
// rather than read from ambient state.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Validate reports a misconfiguration. A service must refuse to start on a
// non-nil result instead of failing per request.
func (c Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Issuer == "" {
		return errors.New("jwt issuer is required")
	}
	if c.Audience == "" {
		return errors.New("jwt audience is required")
	}
	if c.TTL <= 0 {
		return errors.New("jwt expiry must be positive")
	}
	return nil
}

// Claims are the assertions carried by an identity token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c Claims) Username() string { return c.Subject }

// Signer mints identity tokens. Only the auth API holds one.
type Signer struct {
	cfg Config
}

func NewSigner(cfg Config) (*Signer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token signer config: %w", err)
	}
	return &Signer{cfg: cfg}, nil
}

// Mint issues an HS256 token asserting username+role, valid from now until
// now+TTL. Minting is stateless: nothing is persisted per token.
func (s *Signer) Mint(username, role string, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validator checks tokens against the shared configuration. Resource
// services embed one; it never writes state and performs no I/O.
type Validator struct {
	cfg    Config
	nowFn  func() time.Time
	parser *jwt.Parser
}

func NewValidator(cfg Config) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token validator config: %w", err)
	}
	return &Validator{
		cfg:   cfg,
		nowFn: time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Validate checks signature, issuer, audience, and expiry. Any single
// failure yields ErrInvalidToken wrapped around the specific cause so the
// caller can log it without exposing it.
func (v *Validator) Validate(raw string) (Claims, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(v.cfg.Secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	// The parser applies no leeway, but expiry is re-checked against the
	// injected clock so validation stays a pure function of its inputs.
	if claims.ExpiresAt == nil || !v.nowFn().Before(claims.ExpiresAt.Time) {
		return Claims{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	return *claims, nil
}

// DecodeUnverified extracts claims without checking the signature. The web
// front end uses it to re-derive its page-session identity from the token
// it already holds; it must never be used for authorization decisions on a
// resource service.
func DecodeUnverified(raw string) (Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return *claims, nil
}
