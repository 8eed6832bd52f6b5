package repository

import (
	"context"
	"fmt"

	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

// BunDonationRepository implements DonationRepository using Bun ORM
type BunDonationRepository struct {
	db *bun.DB
}

// NewBunDonationRepository creates a new Bun-based donation repository
func NewBunDonationRepository(db *bun.DB) *BunDonationRepository {
	return &BunDonationRepository{db: db}
}

// Create inserts a new donation record
func (r *BunDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == "" {
		donation.ID = bunx.NewUUIDv7()
	}
	if donation.Currency == "" {
		donation.Currency = "INR"
	}
	if donation.Status == "" {
		donation.Status = "completed"
	}
	_, err := r.db.NewInsert().
		Model(donation).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// List retrieves all donations, newest first
func (r *BunDonationRepository) List(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.NewSelect().
		Model(&donations).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}

// BunEventRegistrationRepository implements EventRegistrationRepository using Bun ORM
type BunEventRegistrationRepository struct {
	db *bun.DB
}

// NewBunEventRegistrationRepository creates a new Bun-based event registration repository
func NewBunEventRegistrationRepository(db *bun.DB) *BunEventRegistrationRepository {
	return &BunEventRegistrationRepository{db: db}
}

// Create inserts a new event registration
func (r *BunEventRegistrationRepository) Create(ctx context.Context, registration *models.EventRegistration) error {
	if registration.ID == "" {
		registration.ID = bunx.NewUUIDv7()
	}
	if registration.Status == "" {
		registration.Status = "registered"
	}
	_, err := r.db.NewInsert().
		Model(registration).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create event registration: %w", err)
	}
	return nil
}

// List retrieves all event registrations, newest first
func (r *BunEventRegistrationRepository) List(ctx context.Context) ([]models.EventRegistration, error) {
	var registrations []models.EventRegistration
	err := r.db.NewSelect().
		Model(&registrations).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	return registrations, nil
}

// BunContactMessageRepository implements ContactMessageRepository using Bun ORM
type BunContactMessageRepository struct {
	db *bun.DB
}

// NewBunContactMessageRepository creates a new Bun-based contact message repository
func NewBunContactMessageRepository(db *bun.DB) *BunContactMessageRepository {
	return &BunContactMessageRepository{db: db}
}

// Create inserts a new contact message
func (r *BunContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if message.ID == "" {
		message.ID = bunx.NewUUIDv7()
	}
	if message.Status == "" {
		message.Status = "new"
	}
	_, err := r.db.NewInsert().
		Model(message).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List retrieves all contact messages, newest first
func (r *BunContactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.NewSelect().
		Model(&messages).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}
