package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the monthly quota and deducts one generation.
// It resets the counter to monthly when last_reset_month is behind now.
// Returns ErrExhausted when 0 rows are updated (quota spent or client absent).
func (s *Store) UseToken(ctx context.Context, uid string, monthly int, now time.Time) error {
	month := now.UTC().Format(monthLayout)

	tag, err := s.db.Exec(ctx, `
		UPDATE generation_quota SET
			generations_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE generations_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR generations_remaining > 0)
	`, month, monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExhausted
	}
	return nil
}

// EnsureClient inserts a generation_quota row for uid with the full allowance.
// Existing rows are left untouched.
func (s *Store) EnsureClient(ctx context.Context, uid string, monthly int, now time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_quota (uid, generations_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, monthly, now.UTC().Format(monthLayout))
	return err
}

// Remaining returns the generations left for uid in the current month.
func (s *Store) Remaining(ctx context.Context, uid string, monthly int, now time.Time) (int, error) {
	var remaining int
	err := s.db.QueryRow(ctx, `
		SELECT CASE WHEN last_reset_month < $2 THEN $3 ELSE generations_remaining END
		FROM generation_quota WHERE uid = $1
	`, uid, now.UTC().Format(monthLayout), monthly).Scan(&remaining)
	return remaining, err
}
