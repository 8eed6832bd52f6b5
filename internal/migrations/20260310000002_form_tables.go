package migrations

import (
	"context"
	"fmt"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20260310000002, down_20260310000002)
}

// up_20260310000002 creates the tables backing the public forms: membership
// applications, donations, event registrations, and contact messages.
func up_20260310000002(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating members table...")
	_, err := db.NewCreateTable().
		Model((*models.Member)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create members table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_members_status ON members(status)`)
	if err != nil {
		return fmt.Errorf("failed to create members status index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create members created_at index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating donations table...")
	_, err = db.NewCreateTable().
		Model((*models.Donation)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create donations table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create donations created_at index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating event_registrations table...")
	_, err = db.NewCreateTable().
		Model((*models.EventRegistration)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create event_registrations table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_event_registrations_created_at ON event_registrations(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create event_registrations created_at index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating contact_messages table...")
	_, err = db.NewCreateTable().
		Model((*models.ContactMessage)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create contact_messages table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create contact_messages created_at index: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

func down_20260310000002(ctx context.Context, db *bun.DB) error {
	for _, table := range []string{"contact_messages", "event_registrations", "donations", "members"} {
		if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", table, err)
		}
	}
	return nil
}
