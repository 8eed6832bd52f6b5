package migrations

import (
	"context"
	"fmt"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260310000001, down_20260310000001)
}

// up_20260310000001 creates the identity, role record, and session tables.
func up_20260310000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating identities table...")
	_, err := db.NewCreateTable().
		Model((*models.Identity)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create identities table: %w", err)
	}

	// Email uniqueness is case-insensitive. Postgres needs an expression
	// index for that; SQLite indexes the column under the NOCASE collation.
	emailIndex := `CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_email ON identities(email)`
	switch {
	case IsPostgreSQL(db):
		emailIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_email ON identities(lower(email))`
	case IsSQLite(db):
		emailIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_identities_email ON identities(email COLLATE NOCASE)`
	}
	if _, err = db.Exec(emailIndex); err != nil {
		return fmt.Errorf("failed to create identities email index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating role_records table...")
	_, err = db.NewCreateTable().
		Model((*models.RoleRecord)(nil)).
		IfNotExists().
		ForeignKey(`("identity_id") REFERENCES "identities" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create role_records table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_role_records_email ON role_records(email)`)
	if err != nil {
		return fmt.Errorf("failed to create role_records email index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating sessions table...")
	_, err = db.NewCreateTable().
		Model((*models.Session)(nil)).
		IfNotExists().
		ForeignKey(`("identity_id") REFERENCES "identities" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_token_hash ON sessions(token_hash)`)
	if err != nil {
		return fmt.Errorf("failed to create sessions token_hash index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_sessions_identity_id ON sessions(identity_id)`)
	if err != nil {
		return fmt.Errorf("failed to create sessions identity_id index: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

// down_20260310000001 drops the auth tables in reverse dependency order.
func down_20260310000001(ctx context.Context, db *bun.DB) error {
	for _, table := range []string{"sessions", "role_records", "identities"} {
		if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", table, err)
		}
	}
	return nil
}
