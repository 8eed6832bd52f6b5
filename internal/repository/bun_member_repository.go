package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/uptrace/bun"
)

// BunMemberRepository implements MemberRepository using Bun ORM
type BunMemberRepository struct {
	db *bun.DB
}

// NewBunMemberRepository creates a new Bun-based member repository
func NewBunMemberRepository(db *bun.DB) *BunMemberRepository {
	return &BunMemberRepository{db: db}
}

// Create inserts a new membership application
func (r *BunMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = bunx.NewUUIDv7()
	}
	if member.Status == "" {
		member.Status = models.MemberStatusPending
	}
	_, err := r.db.NewInsert().
		Model(member).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// GetByID retrieves a membership application by ID
func (r *BunMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	member := new(models.Member)
	err := r.db.NewSelect().
		Model(member).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

// List retrieves all membership applications, newest first
func (r *BunMemberRepository) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.NewSelect().
		Model(&members).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Update updates an existing membership application
func (r *BunMemberRepository) Update(ctx context.Context, member *models.Member) error {
	result, err := r.db.NewUpdate().
		Model(member).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member %s: %w", member.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a membership application by ID
func (r *BunMemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().
		Model((*models.Member)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountByStatus counts membership applications with the given status
func (r *BunMemberRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Member)(nil)).
		Where("status = ?", status).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}
