package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRevoker(t *testing.T) (*RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRevoker(client), mr
}

func TestRedisRevoker(t *testing.T) {
	ctx := context.Background()
	rv, mr := newRedisRevoker(t)

	revoked, err := rv.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rv.Revoke(ctx, "abc", time.Now().Add(time.Minute)))
	revoked, err = rv.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.TTL(keyPrefix+"abc") > 0)

	mr.FastForward(2 * time.Minute)
	revoked, err = rv.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked, "entry expires with the token")
}

func TestRedisRevoker_ExpiredTokenIsNotStored(t *testing.T) {
	ctx := context.Background()
	rv, mr := newRedisRevoker(t)

	require.NoError(t, rv.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(keyPrefix+"old"))
	assert.Error(t, rv.Revoke(ctx, "", time.Now().Add(time.Minute)))
}

func TestRedisRevoker_Unavailable(t *testing.T) {
	rv, mr := newRedisRevoker(t)
	mr.Close()

	_, err := rv.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Hour)))
	ok, _ := m.IsRevoked(ctx, "a")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	ok, _ = m.IsRevoked(ctx, "a")
	assert.False(t, ok)
}
