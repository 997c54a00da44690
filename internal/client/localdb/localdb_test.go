package localdb_test

// No driver import here on purpose: opening the database must work with
// nothing but the production import graph.

import (
	"context"
	"testing"

	"github.com/khmorad/Mood-Tracker/internal/client/localdb"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_DriverRegistered(t *testing.T) {
	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, "file:localdbtest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, "file:localdbmig?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'k'`).Scan(&value))
	require.Equal(t, "v", value)
}
