// File: utils/lock.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker is a lease-based mutual exclusion primitive keyed by string.
type Locker interface {
	// TryLock attempts to take the lease; on success it returns a token the
	// holder must present to Unlock.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, string, error)
	// Unlock releases the lease if the token still owns it.
	Unlock(ctx context.Context, key, token string) error
}

// RedisLocker implements Locker with SET NX and owner tokens, so an expired
// lease taken over by another caller is never released by the old holder.
type RedisLocker struct {
	Client *redis.Client
}

func NewRedisLocker() *RedisLocker {
	return &RedisLocker{Client: GetCacheClient()}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	token := uuid.NewString()
	acquired, err := l.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("failed to acquire lease %s: %w", key, err)
	}
	if !acquired {
		return false, "", nil
	}
	return true, token, nil
}

// unlockScript deletes the lease only while the caller's token still owns
// it, in one server-side step, so a lease that expired and was re-acquired
// between read and delete is never released out from under the new holder.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	released, err := unlockScript.Run(ctx, l.Client, []string{key}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lease %s: %w", key, err)
	}
	if released == 0 {
		// Lease expired or changed hands; nothing of ours left to release.
		GetLogger().Warn("lease ownership changed before unlock", zap.String("key", key))
	}
	return nil
}
