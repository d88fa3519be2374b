package pricing

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestStore(t *testing.T) (*Store, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("FAREFLOOR_TEST_DSN")
	if dsn == "" {
		t.Skip("FAREFLOOR_TEST_DSN not set; skipping DB-backed catalog tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE rate_schedules"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return NewStore(db), db
}

func TestStore_GetSchedule(t *testing.T) {
	store, db := setupTestStore(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, `
        INSERT INTO rate_schedules (tenant_id, rate_per_minute, rate_per_km, peak_surge_floor)
        VALUES ('city', 1.10, 1.50, 1.35), ('airport', 0.95, 1.40, 1.25)`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := store.GetSchedule(ctx, "city")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != citySchedule {
		t.Fatalf("schedule = %+v, want %+v", got, citySchedule)
	}

	if _, err := store.GetSchedule(ctx, "ghost"); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}

	tenants, err := store.ListTenants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tenants) != 2 || tenants[0] != "airport" || tenants[1] != "city" {
		t.Fatalf("tenants = %v", tenants)
	}
}

func TestStore_RejectsFloorBelowOne(t *testing.T) {
	_, db := setupTestStore(t)
	_, err := db.Exec(context.Background(), `
        INSERT INTO rate_schedules (tenant_id, rate_per_minute, rate_per_km, peak_surge_floor)
        VALUES ('cheap', 0.80, 1.20, 0.90)`)
	if err == nil {
		t.Fatal("expected check constraint violation")
	}
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_rate_schedules.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(stripSQLComments(string(content))) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
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
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
