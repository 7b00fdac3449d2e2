package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/tourvisto/backend/migrations"
	"github.com/pkordes/tourvisto/backend/testutil"
)

// TestMain applies all pending migrations once before any repo test runs.
// Without TEST_DATABASE_URL every test in the package skips itself.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	if _, err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
