package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := Session{Token: "tok", Username: "alice", Role: "Admin"}
	require.NoError(t, store.Put(ctx, "sid-1", sess, time.Minute))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.nowFn = func() time.Time { return now }
	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "tok"}, time.Minute))

	store.nowFn = func() time.Time { return now.Add(2 * time.Minute) }
	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "tok"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "sid-1"))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSessionsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Username: "alice", Role: "Admin"}, time.Minute))
	require.NoError(t, store.Put(ctx, "sid-2", Session{Username: "bob", Role: "User"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-2")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}
