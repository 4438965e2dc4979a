package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrx/smartrx/internal/authapi/adapters/memory"
	"github.com/smartrx/smartrx/internal/authapi/adapters/security"
	"github.com/smartrx/smartrx/internal/authapi/domain"
	"github.com/smartrx/smartrx/internal/platform/token"
)

type fixture struct {
	service *Service
	store   *memory.AccountStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	signer, err := token.NewSigner(token.Config{
		Secret:   "unit-test-secret",
		Issuer:   "smartrx-auth",
		Audience: "smartrx-services",
		TTL:      15 * time.Minute,
	})
	require.NoError(t, err)

	store := memory.NewAccountStore()
	return &fixture{
		service: NewService(Dependencies{
			Accounts: store,
			Hasher:   security.NewPBKDF2Hasher(1024),
			Signer:   signer,
		}),
		store: store,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	res, err := f.service.Register(ctx, RegisterRequest{Username: "alice", Password: "pw123", Role: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "Admin", res.Role)
	assert.NotZero(t, res.ID)

	login, err := f.service.Login(ctx, LoginRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "Admin", login.Role)

	claims, err := token.DecodeUnverified(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, "Admin", claims.Role)
}

func TestRegisterDefaultsRole(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res, err := f.service.Register(context.Background(), RegisterRequest{Username: "bob", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestRegisterRejectsBlankInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for _, req := range []RegisterRequest{
		{Username: "", Password: "pw123"},
		{Username: "   ", Password: "pw123"},
		{Username: "carol", Password: ""},
		{Username: "carol", Password: " \t "},
	} {
		_, err := f.service.Register(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 0, f.store.Count())
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, RegisterRequest{Username: "dave", Password: "pw123"})
	require.NoError(t, err)

	_, err = f.service.Register(ctx, RegisterRequest{Username: "dave", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.store.Count())

	// The original password still verifies: the failed attempt mutated nothing.
	_, err = f.service.Login(ctx, LoginRequest{Username: "dave", Password: "pw123"})
	assert.NoError(t, err)
}

func TestConcurrentDuplicateRegistration(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Register(ctx, RegisterRequest{Username: "erin", Password: "pw123"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.Count())
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, RegisterRequest{Username: "frank", Password: "pw123"})
	require.NoError(t, err)

	_, wrongPassword := f.service.Login(ctx, LoginRequest{Username: "frank", Password: "nope"})
	_, unknownUser := f.service.Login(ctx, LoginRequest{Username: "nobody", Password: "whatever"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	// The caller must not be able to tell the two apart.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
