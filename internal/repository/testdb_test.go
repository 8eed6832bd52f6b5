package repository

import (
	"context"
	"testing"

	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/migrations"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// setupTestDB creates an in-memory SQLite database with the full schema applied
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))

	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}
