package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

// BunRoleRecordRepository implements RoleRecordRepository using Bun ORM
type BunRoleRecordRepository struct {
	db *bun.DB
}

// NewBunRoleRecordRepository creates a new Bun-based role record repository
func NewBunRoleRecordRepository(db *bun.DB) *BunRoleRecordRepository {
	return &BunRoleRecordRepository{db: db}
}

// Create inserts a new role record
func (r *BunRoleRecordRepository) Create(ctx context.Context, record *models.RoleRecord) error {
	if record.Role == "" {
		record.Role = models.RoleMember
	}
	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create role record: %w", err)
	}
	return nil
}

// GetByIdentityID retrieves the role record for an identity.
// Returns (nil, nil) when no record exists: sign-up creates the record
// best-effort, so absence is an expected state, not an error.
func (r *BunRoleRecordRepository) GetByIdentityID(ctx context.Context, identityID string) (*models.RoleRecord, error) {
	record := new(models.RoleRecord)
	err := r.db.NewSelect().
		Model(record).
		Where("identity_id = ?", identityID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role record: %w", err)
	}
	return record, nil
}

// SetRole updates the role for an identity
func (r *BunRoleRecordRepository) SetRole(ctx context.Context, identityID, role string) error {
	result, err := r.db.NewUpdate().
		Model((*models.RoleRecord)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", time.Now()).
		Where("identity_id = ?", identityID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("role record for identity %s: %w", identityID, ErrNotFound)
	}
	return nil
}

// List retrieves all role records (admin operation)
func (r *BunRoleRecordRepository) List(ctx context.Context) ([]models.RoleRecord, error) {
	var records []models.RoleRecord
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list role records: %w", err)
	}
	return records, nil
}
