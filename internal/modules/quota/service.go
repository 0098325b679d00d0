package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Backend is the persistence used by Service; *Store implements it.
type Backend interface {
	UseToken(ctx context.Context, uid string, monthly int, now time.Time) error
	EnsureClient(ctx context.Context, uid string, monthly int, now time.Time) error
	Remaining(ctx context.Context, uid string, monthly int, now time.Time) (int, error)
}

// Service orchestrates the monthly generation allowance.
type Service struct {
	store   Backend
	monthly int
	now     func() time.Time
}

// NewService creates a Service granting monthly generations per client.
func NewService(store Backend, monthly int) *Service {
	if monthly <= 0 {
		monthly = DefaultMonthly
	}
	return &Service{store: store, monthly: monthly, now: time.Now}
}

// UseToken deducts one generation from the client's monthly allowance.
// If the client row does not exist yet it is initialised and the generation
// is immediately consumed. Returns ErrExhausted when the month is spent.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	now := s.now()
	err := s.store.UseToken(ctx, uid, s.monthly, now)
	if err != ErrExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureClient(ctx, uid, s.monthly, now); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid, s.monthly, now)
}

// Remaining reports what uid has left this month; unknown clients have the full allowance.
func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	n, err := s.store.Remaining(ctx, uid, s.monthly, s.now())
	if errors.Is(err, pgx.ErrNoRows) {
		return s.monthly, nil
	}
	return n, err
}
