package migrations

import (
	"context"
	"fmt"

	"github.com/helpinghands-foundation/hhf/internal/auth/bunadapter"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260310000003, down_20260310000003)
}

// adminPolicies are the grants seeded for the admin role. Members hold no
// policy rows at all: collected data is admin-only, and public form
// submission bypasses the authorization layer entirely.
var adminPolicies = [][]string{
	{"role:admin", "members", "read"},
	{"role:admin", "members", "update"},
	{"role:admin", "members", "delete"},
	{"role:admin", "donations", "read"},
	{"role:admin", "events", "read"},
	{"role:admin", "messages", "read"},
	{"role:admin", "users", "update"},
}

// up_20260310000003 creates the casbin_rules table and seeds the admin grants.
func up_20260310000003(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating casbin_rules table...")
	_, err := db.NewCreateTable().
		Model((*bunadapter.CasbinRule)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create casbin_rules table: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] seeding admin policies...")
	rules := make([]*bunadapter.CasbinRule, 0, len(adminPolicies))
	for _, p := range adminPolicies {
		rules = append(rules, &bunadapter.CasbinRule{
			Ptype: "p",
			V0:    p[0],
			V1:    p[1],
			V2:    p[2],
		})
	}
	if _, err := db.NewInsert().Model(&rules).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed admin policies: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

func down_20260310000003(ctx context.Context, db *bun.DB) error {
	if _, err := db.Exec(`DROP TABLE IF EXISTS casbin_rules`); err != nil {
		return fmt.Errorf("failed to drop casbin_rules table: %w", err)
	}
	return nil
}
