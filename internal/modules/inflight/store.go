// README: In-flight lock store backed by Redis SET NX.
package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "formulagen:inflight:%s"

// releaseScript deletes the lock only while it still holds our token,
// so an expired-then-retaken lock is never released by its old owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// TryLock sets the lock for uid if absent. It reports whether the lock was taken.
func (s *Store) TryLock(ctx context.Context, uid, token string, ttl time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, lockKey(uid), token, ttl).Result()
}

// Unlock removes the lock for uid if it still carries token.
func (s *Store) Unlock(ctx context.Context, uid, token string) error {
	return releaseScript.Run(ctx, s.redis, []string{lockKey(uid)}, token).Err()
}

func lockKey(uid string) string {
	return fmt.Sprintf(lockKeyPrefix, uid)
}
