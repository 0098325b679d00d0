// README: Quota module tests (lazy reset and allowance boundary logic).
package quota

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type row struct {
	remaining int
	month     string
}

// memBackend mirrors the SQL semantics of Store.
type memBackend struct {
	rows map[string]*row
}

func (m *memBackend) UseToken(_ context.Context, uid string, monthly int, now time.Time) error {
	month := now.UTC().Format(monthLayout)
	r, ok := m.rows[uid]
	if !ok || (r.month >= month && r.remaining <= 0) {
		return ErrExhausted
	}
	if r.month != month {
		r.remaining = monthly - 1
	} else {
		r.remaining--
	}
	r.month = month
	return nil
}

func (m *memBackend) EnsureClient(_ context.Context, uid string, monthly int, now time.Time) error {
	if _, ok := m.rows[uid]; !ok {
		m.rows[uid] = &row{remaining: monthly, month: now.UTC().Format(monthLayout)}
	}
	return nil
}

func (m *memBackend) Remaining(_ context.Context, uid string, monthly int, now time.Time) (int, error) {
	r, ok := m.rows[uid]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	if r.month < now.UTC().Format(monthLayout) {
		return monthly, nil
	}
	return r.remaining, nil
}

func newMemService(monthly int, now time.Time) (*Service, *memBackend) {
	b := &memBackend{rows: map[string]*row{}}
	svc := NewService(b, monthly)
	svc.now = func() time.Time { return now }
	return svc, b
}

func TestServiceNewClient(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, b := newMemService(3, now)
	ctx := context.Background()

	left, err := svc.Remaining(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, 3, left)

	require.NoError(t, svc.UseToken(ctx, "fresh"))
	require.Equal(t, 2, b.rows["fresh"].remaining)
}

func TestServiceExhaustion(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newMemService(2, now)
	ctx := context.Background()

	require.NoError(t, svc.UseToken(ctx, "c"))
	require.NoError(t, svc.UseToken(ctx, "c"))
	require.ErrorIs(t, svc.UseToken(ctx, "c"), ErrExhausted)
}

func TestServiceMonthRollover(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc, b := newMemService(5, now)
	b.rows["old"] = &row{remaining: 0, month: "2026-03"}

	left, err := svc.Remaining(context.Background(), "old")
	require.NoError(t, err)
	require.Equal(t, 5, left)

	require.NoError(t, svc.UseToken(context.Background(), "old"))
	require.Equal(t, 4, b.rows["old"].remaining)
	require.Equal(t, "2026-04", b.rows["old"].month)
}

func TestNewServiceDefaultsAllowance(t *testing.T) {
	svc := NewService(&memBackend{rows: map[string]*row{}}, 0)
	require.Equal(t, DefaultMonthly, svc.monthly)
}

// TestUseTokenCrossMonthReset verifies that a client with 0 generations left from a previous month
// is automatically reset and the request succeeds.
func TestUseTokenCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO generation_quota VALUES ('client_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	require.NoError(t, svc.UseToken(ctx, "client_reset"))

	var remaining int
	require.NoError(t, db.QueryRow(ctx, "SELECT generations_remaining FROM generation_quota WHERE uid = 'client_reset'").Scan(&remaining))
	require.Equal(t, DefaultMonthly-1, remaining)
}

// TestUseTokenExhaustedCheck verifies that a client with 0 generations in the current month is blocked.
func TestUseTokenExhaustedCheck(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO generation_quota (uid, generations_remaining, last_reset_month) VALUES ('client_zero', 0, $1)",
		time.Now().UTC().Format(monthLayout)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	require.ErrorIs(t, svc.UseToken(ctx, "client_zero"), ErrExhausted)
}

// TestUseTokenNewClient verifies that a client absent from the table is initialised on first call.
func TestUseTokenNewClient(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UseToken(ctx, "client_new"))

	var remaining int
	require.NoError(t, db.QueryRow(ctx, "SELECT generations_remaining FROM generation_quota WHERE uid = 'client_new'").Scan(&remaining))
	require.Equal(t, DefaultMonthly-1, remaining)

	left, err := svc.Remaining(ctx, "client_new")
	require.NoError(t, err)
	require.Equal(t, DefaultMonthly-1, left)
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when FORMULAGEN_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("FORMULAGEN_TEST_DSN")
	if dsn == "" {
		t.Skip("FORMULAGEN_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE generation_quota"); err != nil {
		t.Fatalf("truncate generation_quota: %v", err)
	}

	return NewService(NewStore(db), DefaultMonthly), db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	entries, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	for _, path := range entries {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, stmt := range splitSQL(stripSQLComments(string(content))) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
