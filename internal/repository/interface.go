package repository

import (
	"context"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
)

// IdentityRepository exposes persistence operations for authentication identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByID(ctx context.Context, id string) (*models.Identity, error)
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	Update(ctx context.Context, identity *models.Identity) error
	UpdateLastLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SessionRepository exposes persistence operations for bearer sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	UpdateLastUsed(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
	RevokeByIdentityID(ctx context.Context, identityID string) error
	DeleteExpired(ctx context.Context) error
}

// RoleRecordRepository exposes persistence operations for role records.
// A missing record is reported as (nil, nil), not an error: the caller
// treats it as "no role".
type RoleRecordRepository interface {
	Create(ctx context.Context, record *models.RoleRecord) error
	GetByIdentityID(ctx context.Context, identityID string) (*models.RoleRecord, error)
	SetRole(ctx context.Context, identityID, role string) error
	List(ctx context.Context) ([]models.RoleRecord, error)
}

// MemberRepository exposes persistence operations for membership applications.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

// DonationRepository exposes persistence operations for donations.
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context) ([]models.Donation, error)
}

// EventRegistrationRepository exposes persistence operations for event registrations.
type EventRegistrationRepository interface {
	Create(ctx context.Context, registration *models.EventRegistration) error
	List(ctx context.Context) ([]models.EventRegistration, error)
}

// ContactMessageRepository exposes persistence operations for contact messages.
type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}
