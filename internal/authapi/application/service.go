// Package application holds the auth use-cases: account registration and
// login with token issuance.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartrx/smartrx/internal/authapi/domain"
	"github.com/smartrx/smartrx/internal/authapi/ports"
	"github.com/smartrx/smartrx/internal/platform/token"
)

// Dependencies wires the service to its collaborators.
type Dependencies struct {
	Accounts ports.AccountRepository
	Hasher   ports.PasswordHasher
	Signer   *token.Signer
}

type Service struct {
	accounts ports.AccountRepository
	hasher   ports.PasswordHasher
	signer   *token.Signer
	nowFn    func() time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		accounts: deps.Accounts,
		hasher:   deps.Hasher,
		signer:   deps.Signer,
		nowFn:    time.Now,
	}
}

func logger() *slog.Logger {
	return slog.Default().With(
		"service", "smartrx-authapi",
		"module", "application",
	)
}

// Register creates an account with a fresh salt and digest. Uniqueness is
// delegated to the repository insert so concurrent duplicates cannot both
// succeed; a failed registration mutates nothing.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return RegisterResponse{}, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Password) == "" {
		return RegisterResponse{}, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleUser
	}

	salt, err := s.hasher.NewSalt()
	if err != nil {
		return RegisterResponse{}, err
	}

	account, err := s.accounts.Create(ctx, domain.Account{
		ID:             uuid.New(),
		Username:       req.Username,
		Salt:           salt,
		PasswordDigest: s.hasher.Digest(req.Password, salt),
		Role:           role,
		CreatedAt:      s.nowFn().UTC(),
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	logger().InfoContext(ctx, "account registered",
		"operation", "register",
		"outcome", "success",
		"username", account.Username,
		"role", account.Role,
	)

	// Salt and digest never leave the credential store.
	return RegisterResponse{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

// Login verifies credentials and mints an identity token. Unknown username
// and digest mismatch return the same error; the distinction exists only in
// internal logs.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	account, err := s.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger().WarnContext(ctx, "login failed",
				"operation", "login",
				"outcome", "failure",
				"reason", "unknown_username",
			)
			return LoginResponse{}, domain.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if !s.hasher.Verify(req.Password, account.Salt, account.PasswordDigest) {
		logger().WarnContext(ctx, "login failed",
			"operation", "login",
			"outcome", "failure",
			"reason", "digest_mismatch",
		)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	signed, err := s.signer.Mint(account.Username, account.Role, s.nowFn())
	if err != nil {
		return LoginResponse{}, fmt.Errorf("mint token: %w", err)
	}

	logger().InfoContext(ctx, "login succeeded",
		"operation", "login",
		"outcome", "success",
		"username", account.Username,
	)

	return LoginResponse{
		Token:    signed,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}
