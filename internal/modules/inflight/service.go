package inflight

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrBusy is returned when the client already has a generation outstanding.
var ErrBusy = errors.New("a generation is already in progress")

// DefaultTTL bounds how long an abandoned lock blocks a client.
const DefaultTTL = 60 * time.Second

// Locker is the lock backend; *Store implements it.
type Locker interface {
	TryLock(ctx context.Context, uid, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, uid, token string) error
}

// Service admits one outstanding generation per client id.
type Service struct {
	locks Locker
	ttl   time.Duration
}

func NewService(locks Locker, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{locks: locks, ttl: ttl}
}

// Acquire takes the lock for uid. The returned release is safe to call once
// the request context is done.
func (s *Service) Acquire(ctx context.Context, uid string) (func(), error) {
	token := uuid.NewString()
	ok, err := s.locks.TryLock(ctx, uid, token, s.ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.locks.Unlock(releaseCtx, uid, token); err != nil {
			log.Printf("inflight: release uid=%s: %v", uid, err)
		}
	}, nil
}
