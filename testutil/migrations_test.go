package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourvisto/backend/migrations"
	"github.com/pkordes/tourvisto/backend/testutil"
)

var tables = []string{"users", "trips"}

// TestMigrations applies every migration from a clean database, checks the
// tables exist, rolls everything back and checks they are gone.
// Skipped when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// Another package's TestMain may already have migrated this shared DB.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "migrations.Up")
	assert.Equal(t, 2, applied)

	for _, table := range tables {
		assert.True(t, tableExists(t, db, table), "expected table %q to exist", table)
	}

	// A second Up is a no-op.
	applied, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, applied)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range tables {
		assert.False(t, tableExists(t, db, table), "expected table %q to be dropped", table)
	}

	// Leave the schema in place for packages that run after this one.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists), "check table %q", table)
	return exists
}
