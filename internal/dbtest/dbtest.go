// AngelaMos | 2026
// dbtest.go

// Package dbtest opens database handles for repository tests: a sqlmock
// handle for statement-level tests and, when TEST_DATABASE_URL is set, a
// real Postgres handle with the schema applied.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const EnvDatabaseURL = "TEST_DATABASE_URL"

// Mock returns a sqlx handle bound with Postgres placeholders and its
// expectation controller. Unmet expectations fail the test at cleanup.
func Mock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
		_ = db.Close()
	})

	return sqlx.NewDb(db, "pgx"), mock
}

// Postgres connects to TEST_DATABASE_URL, applies the migrations and
// empties every table. The test is skipped when the variable is unset.
func Postgres(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(migrationPath())
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	_, err = db.ExecContext(ctx, `
		TRUNCATE users, counters, biodata, reviews, favorites, payments,
			premium_requests`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return db
}

func migrationPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations", "0001_init.sql")
}
