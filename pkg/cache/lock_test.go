package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	l := cache.NewLocalLocker()
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx, "ws-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "ws-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be rejected")

	_, ok, _ = l.TryLock(ctx, "ws-2", time.Minute)
	assert.True(t, ok, "keys are independent")

	release()
	_, ok, _ = l.TryLock(ctx, "ws-1", time.Minute)
	assert.True(t, ok, "lock is free after release")
}

func TestLocalLockerExpires(t *testing.T) {
	l := cache.NewLocalLocker()
	_, ok, _ := l.TryLock(context.Background(), "k", time.Millisecond)
	require.True(t, ok)
	time.Sleep(5 * time.Millisecond)
	_, ok, _ = l.TryLock(context.Background(), "k", time.Minute)
	assert.True(t, ok)
}

func TestLocalLockerStaleReleaseKeepsNewHolder(t *testing.T) {
	l := cache.NewLocalLocker()
	ctx := context.Background()

	staleRelease, ok, _ := l.TryLock(ctx, "k", time.Millisecond)
	require.True(t, ok)
	time.Sleep(5 * time.Millisecond)

	release, ok, _ := l.TryLock(ctx, "k", time.Minute)
	require.True(t, ok, "expired lock is taken over")

	staleRelease()
	_, ok, _ = l.TryLock(ctx, "k", time.Minute)
	assert.False(t, ok, "expired holder must not free the new holder's lock")

	release()
	_, ok, _ = l.TryLock(ctx, "k", time.Minute)
	assert.True(t, ok)
}

