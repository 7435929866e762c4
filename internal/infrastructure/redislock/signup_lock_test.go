package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLock(t *testing.T) (*SignupLock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSignupLock(rdb, 5*time.Second, nil), mr
}

func TestAcquireAndRelease(t *testing.T) {
	l, mr := newLock(t)
	ctx := context.Background()

	release, ok, err := l.Acquire(ctx, "signup:login:alice", "signup:email:alice@x.io")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("lock:signup:login:alice"))
	assert.True(t, mr.Exists("lock:signup:email:alice@x.io"))

	_, ok, err = l.Acquire(ctx, "signup:login:bob", "signup:email:alice@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("lock:signup:login:bob"), "partial acquire must be rolled back")

	release()
	release()
	assert.False(t, mr.Exists("lock:signup:login:alice"))

	release2, ok, err := l.Acquire(ctx, "signup:login:bob", "signup:email:alice@x.io")
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}

func TestLockExpires(t *testing.T) {
	l, mr := newLock(t)
	ctx := context.Background()

	_, ok, err := l.Acquire(ctx, "signup:login:alice")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(6 * time.Second)
	_, ok, err = l.Acquire(ctx, "signup:login:alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	l, mr := newLock(t)
	ctx := context.Background()

	release, ok, err := l.Acquire(ctx, "signup:login:alice")
	require.NoError(t, err)
	require.True(t, ok)

	// lock expired and was taken by another signup
	mr.FastForward(6 * time.Second)
	_, ok, err = l.Acquire(ctx, "signup:login:alice")
	require.NoError(t, err)
	require.True(t, ok)
	owner, _ := mr.Get("lock:signup:login:alice")

	release()
	got, err := mr.Get("lock:signup:login:alice")
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestAcquireRedisDown(t *testing.T) {
	l, mr := newLock(t)
	mr.Close()
	_, ok, err := l.Acquire(context.Background(), "signup:login:alice")
	assert.Error(t, err)
	assert.False(t, ok)
}
