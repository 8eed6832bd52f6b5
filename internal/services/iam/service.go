package iam

import (
	"context"
	"errors"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
)

// MinPasswordLength is the minimum accepted password length. Clients enforce
// the same bound locally before any network call; the server re-checks it
// because client-side validation is advisory.
const MinPasswordLength = 6

var (
	// ErrInvalidCredentials is returned when the email/password pair does not
	// match a known identity. Lookup misses and password mismatches are
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned on sign-up when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrPasswordTooShort is returned when the password is below MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrIdentityDisabled is returned when the identity exists but is disabled.
	ErrIdentityDisabled = errors.New("identity is disabled")

	// ErrUnverified is returned on login when the identity's email has not
	// been verified. Like disabled_at, verified_at is managed out of band:
	// both creation paths verify immediately, and an operator clears the
	// column to hold an account pending review.
	ErrUnverified = errors.New("email not verified")
)

// Service provides all identity and access management operations.
//
// This service centralizes:
//   - Sign-up and login (control plane)
//   - Bearer authentication (request path - performance critical)
//   - Role resolution (request path - cached, fail-closed)
//   - Role mutation (admin operations - triggers cache invalidation)
type Service interface {
	// SignUp registers a new identity with a bcrypt-hashed password.
	//
	// A role record defaulting to "member" is created as a best-effort side
	// effect: if that write fails the failure is logged and sign-up still
	// succeeds. The identity then resolves to no role until an admin repairs
	// the record.
	//
	// Returns ErrEmailTaken or ErrPasswordTooShort on validation failure.
	SignUp(ctx context.Context, email, password, name string) (*models.Identity, error)

	// Login verifies an email/password pair.
	//
	// Returns ErrInvalidCredentials when the identity is unknown or the
	// password does not match, ErrIdentityDisabled for disabled identities,
	// and ErrUnverified for identities whose email is not verified. On
	// success the identity's last_login_at is updated.
	Login(ctx context.Context, email, password string) (*models.Identity, error)

	// CreateSession mints a bearer session for an identity.
	//
	// Returns:
	//   - session: the created session record
	//   - token: the unhashed bearer token (returned to the client, never stored)
	//
	// The token is hashed (SHA-256) before storage. The session carries a
	// signed HS256 identity token so clients can render the signed-in
	// identity without another round trip.
	CreateSession(ctx context.Context, identity *models.Identity, userAgent, ipAddress string) (*models.Session, string, error)

	// Authenticate resolves a bearer token to a Principal.
	//
	// Validates the session (not expired, not revoked, identity not
	// disabled) and resolves the identity's role. A missing role record
	// yields a Principal with no roles; a role resolution error fails the
	// authentication (fail-closed).
	Authenticate(ctx context.Context, bearerToken string) (*auth.Principal, error)

	// GetSession retrieves a session by its ID.
	// Returns repository.ErrNotFound (wrapped) if the session doesn't exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// RevokeSession invalidates a single session by ID.
	RevokeSession(ctx context.Context, sessionID string) error

	// RevokeAllSessions invalidates every session for an identity.
	// Used for global sign-out across devices.
	RevokeAllSessions(ctx context.Context, identityID string) error

	// ResolveRole returns the identity's role, or "" when no role record
	// exists. Results are cached with a short TTL; errors are never cached.
	ResolveRole(ctx context.Context, identityID string) (string, error)

	// SetRole updates an identity's role record and invalidates the cache
	// entry so the change is visible on the next resolution.
	//
	// Returns repository.ErrNotFound (wrapped) when the identity has no
	// role record to update.
	SetRole(ctx context.Context, identityID, role string) error

	// InvalidateRole drops the cached role for an identity. Safe to call
	// for identities that were never cached.
	InvalidateRole(identityID string)

	// GetIdentityByEmail retrieves an identity by email address.
	// Returns repository.ErrNotFound (wrapped) if the identity doesn't exist.
	GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error)
}
