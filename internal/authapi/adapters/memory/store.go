// Package memory provides an in-process account store used for local runs
// without Postgres and as the fixture for unit tests. The mutex makes the
// uniqueness check and insert a single atomic step, matching the behavior
// the unique index gives the Postgres adapter.
package memory

import (
	"context"
	"sync"

	"github.com/smartrx/smartrx/internal/authapi/domain"
)

type AccountStore struct {
	mu         sync.Mutex
	byUsername map[string]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{byUsername: make(map[string]domain.Account)}
}

func (s *AccountStore) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[account.Username]; exists {
		return domain.Account{}, domain.ErrConflict
	}
	s.byUsername[account.Username] = account
	return account, nil
}

func (s *AccountStore) GetByUsername(_ context.Context, username string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byUsername[username]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

// Count reports how many accounts exist; used by tests asserting that a
// duplicate registration did not mutate state.
func (s *AccountStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUsername)
}
