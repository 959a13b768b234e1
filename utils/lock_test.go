package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &RedisLocker{Client: client}, mr
}

func TestTryLockIsExclusive(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	ok, token, err := locker.TryLock(ctx, "lease:a", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	ok, _, err = locker.TryLock(ctx, "lease:a", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held lease must not be granted twice")
}

func TestUnlockReleasesOwnLease(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	ok, token, err := locker.TryLock(ctx, "lease:a", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Unlock(ctx, "lease:a", token))
	assert.False(t, mr.Exists("lease:a"))

	ok, _, err = locker.TryLock(ctx, "lease:a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "released lease is available again")
}

func TestUnlockLeavesTakenOverLeaseIntact(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	ok, stale, err := locker.TryLock(ctx, "lease:a", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// The lease expires and another holder takes it before the old holder
	// gets around to unlocking.
	mr.FastForward(2 * time.Second)
	ok, fresh, err := locker.TryLock(ctx, "lease:a", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Unlock(ctx, "lease:a", stale))
	require.True(t, mr.Exists("lease:a"), "stale token must not release the new holder's lease")
	got, err := mr.Get("lease:a")
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	require.NoError(t, locker.Unlock(ctx, "lease:a", fresh))
	assert.False(t, mr.Exists("lease:a"))
}

func TestUnlockExpiredLeaseIsHarmless(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	ok, token, err := locker.TryLock(ctx, "lease:a", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	require.NoError(t, locker.Unlock(ctx, "lease:a", token))
}
