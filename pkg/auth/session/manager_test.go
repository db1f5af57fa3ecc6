package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type memKeyer struct{}

func (memKeyer) AccessSessionKey(accessID string) string {
	return "session:" + accessID
}

func newTestManager() (*Manager, *memStore) {
	store := newMemStore()
	return &Manager{store: store, keyer: memKeyer{}, ttl: time.Hour}, store
}

func TestManager_GenerateAndHasSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = mgr.HasSession(ctx, NewAccessID())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManager_RotateInvalidatesOldSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)

	newAccessID, newToken, err := mgr.Rotate(ctx, accessID, token)
	require.NoError(t, err)
	require.NotEqual(t, accessID, newAccessID)
	require.NotEqual(t, token, newToken)

	ok, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = mgr.HasSession(ctx, newAccessID)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestManager_RotateRejectsMismatchedToken(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	_, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)

	_, _, err = mgr.Rotate(ctx, accessID, "not-the-token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = mgr.Rotate(ctx, NewAccessID(), "whatever")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestManager_Revoke(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	_, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, accessID))

	ok, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	require.False(t, ok)
}
