package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// BunIdentityRepository implements IdentityRepository using Bun ORM
type BunIdentityRepository struct {
	db *bun.DB
}

// NewBunIdentityRepository creates a new Bun-based identity repository
func NewBunIdentityRepository(db *bun.DB) *BunIdentityRepository {
	return &BunIdentityRepository{db: db}
}

// Create inserts a new identity into the database
func (r *BunIdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	if identity.ID == "" {
		identity.ID = bunx.NewUUIDv7()
	}
	_, err := r.db.NewInsert().
		Model(identity).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create identity: %w", err)
	}
	return nil
}

// GetByID retrieves an identity by its ID
func (r *BunIdentityRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	identity := new(models.Identity)
	err := r.db.NewSelect().
		Model(identity).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get identity by ID: %w", err)
	}
	return identity, nil
}

// GetByEmail retrieves an identity by its email
func (r *BunIdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	identity := new(models.Identity)
	err := r.db.NewSelect().
		Model(identity).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}
	return identity, nil
}

// Update updates an existing identity
func (r *BunIdentityRepository) Update(ctx context.Context, identity *models.Identity) error {
	identity.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(identity).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update identity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("identity %s: %w", identity.ID, ErrNotFound)
	}
	return nil
}

// UpdateLastLogin updates the last_login_at timestamp for an identity
func (r *BunIdentityRepository) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.NewUpdate().
		Model((*models.Identity)(nil)).
		Set("last_login_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// Count returns the number of registered identities
func (r *BunIdentityRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Identity)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count identities: %w", err)
	}
	return count, nil
}
