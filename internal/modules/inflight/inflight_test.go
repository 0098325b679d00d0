package inflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memLocker is an in-process Locker with the same token semantics as Store.
type memLocker struct {
	mu   sync.Mutex
	held map[string]string
	ttls []time.Duration
	err  error
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]string{}}
}

func (m *memLocker) TryLock(_ context.Context, uid, token string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	m.ttls = append(m.ttls, ttl)
	if _, ok := m.held[uid]; ok {
		return false, nil
	}
	m.held[uid] = token
	return true, nil
}

func (m *memLocker) Unlock(_ context.Context, uid, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[uid] == token {
		delete(m.held, uid)
	}
	return nil
}

func TestAcquireIsExclusivePerClient(t *testing.T) {
	ctx := context.Background()
	locks := newMemLocker()
	svc := NewService(locks, 0)

	release, err := svc.Acquire(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Acquire(ctx, "alice")
	require.ErrorIs(t, err, ErrBusy)

	releaseBob, err := svc.Acquire(ctx, "bob")
	require.NoError(t, err)
	releaseBob()

	release()
	release2, err := svc.Acquire(ctx, "alice")
	require.NoError(t, err)
	release2()

	require.Equal(t, DefaultTTL, locks.ttls[0])
}

func TestAcquireBackendError(t *testing.T) {
	locks := newMemLocker()
	locks.err = errors.New("redis down")
	_, err := NewService(locks, time.Second).Acquire(context.Background(), "alice")
	require.ErrorContains(t, err, "redis down")
	require.NotErrorIs(t, err, ErrBusy)
}

func TestRedisStoreLock(t *testing.T) {
	addr := os.Getenv("FORMULAGEN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FORMULAGEN_TEST_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	uid := fmt.Sprintf("client_test_%d", time.Now().UnixNano())
	t.Cleanup(func() { rdb.Del(context.Background(), lockKey(uid)) })

	store := NewStore(rdb)
	ok, err := store.TryLock(ctx, uid, "t1", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.TryLock(ctx, uid, "t2", 5*time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	// A stale token must not release someone else's lock.
	require.NoError(t, store.Unlock(ctx, uid, "t2"))
	require.Equal(t, int64(1), rdb.Exists(ctx, lockKey(uid)).Val())

	require.NoError(t, store.Unlock(ctx, uid, "t1"))
	require.Equal(t, int64(0), rdb.Exists(ctx, lockKey(uid)).Val())
}
