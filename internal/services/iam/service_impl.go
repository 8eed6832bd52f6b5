package iam

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/repository"
)

// iamService implements the Service interface.
//
// It coordinates between the identity/session/role repositories and the
// short-TTL role cache. All role reads in the request path go through
// ResolveRole so the cache and its invalidation rules apply uniformly.
type iamService struct {
	identities  repository.IdentityRepository
	sessions    repository.SessionRepository
	roleRecords repository.RoleRecordRepository

	roleCache *roleCache

	sessionDuration time.Duration
	idTokenSecret   []byte
}

// ServiceDependencies contains all dependencies for IAM service construction.
type ServiceDependencies struct {
	Identities  repository.IdentityRepository
	Sessions    repository.SessionRepository
	RoleRecords repository.RoleRecordRepository
}

// ServiceConfig contains configuration for IAM service construction.
// Separated from dependencies to distinguish config from runtime wiring.
type ServiceConfig struct {
	// SessionDuration is the lifetime of minted bearer sessions.
	// Defaults to auth.DefaultSessionDuration when zero.
	SessionDuration time.Duration

	// IDTokenSecret signs the HS256 identity tokens attached to sessions.
	IDTokenSecret []byte

	// RoleCacheTTL bounds role staleness across instances.
	// Defaults to DefaultRoleCacheTTL when zero.
	RoleCacheTTL time.Duration
}

// NewService creates a new IAM service.
func NewService(deps ServiceDependencies, cfg ServiceConfig) (Service, error) {
	if len(cfg.IDTokenSecret) == 0 {
		return nil, fmt.Errorf("id token secret is required")
	}
	sessionDuration := cfg.SessionDuration
	if sessionDuration <= 0 {
		sessionDuration = auth.DefaultSessionDuration
	}

	return &iamService{
		identities:      deps.Identities,
		sessions:        deps.Sessions,
		roleRecords:     deps.RoleRecords,
		roleCache:       newRoleCache(cfg.RoleCacheTTL),
		sessionDuration: sessionDuration,
		idTokenSecret:   cfg.IDTokenSecret,
	}, nil
}

// =========================================================================
// Sign-Up / Login (Control Plane)
// =========================================================================

func (s *iamService) SignUp(ctx context.Context, email, password, name string) (*models.Identity, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing identity: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Self-service sign-ups are verified immediately; there is no mailer to
	// deliver a confirmation link. Operators hold an account by clearing
	// verified_at.
	now := time.Now()
	identity := &models.Identity{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		VerifiedAt:   &now,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	// Best-effort role record creation. Failure leaves the identity with no
	// role, which downstream consumers treat as "signed in, no tier".
	record := &models.RoleRecord{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Role:       models.RoleMember,
	}
	if err := s.roleRecords.Create(ctx, record); err != nil {
		log.Printf("Warning: role record creation failed for identity %s: %v", identity.ID, err)
	}

	return identity, nil
}

func (s *iamService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if identity.DisabledAt != nil {
		return nil, ErrIdentityDisabled
	}

	if identity.VerifiedAt == nil {
		return nil, ErrUnverified
	}

	if err := s.identities.UpdateLastLogin(ctx, identity.ID); err != nil {
		// Timestamp bookkeeping must not fail the login
		log.Printf("Warning: failed to update last login for identity %s: %v", identity.ID, err)
	}

	return identity, nil
}

// =========================================================================
// Session Management
// =========================================================================

func (s *iamService) CreateSession(ctx context.Context, identity *models.Identity, userAgent, ipAddress string) (*models.Session, string, error) {
	token, tokenHash, err := auth.GenerateBearerToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate bearer token: %w", err)
	}

	expiresAt := time.Now().Add(s.sessionDuration)

	idToken, err := auth.SignIDToken(s.idTokenSecret, identity.ID, identity.Email, identity.Name, expiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("sign id token: %w", err)
	}

	session := &models.Session{
		IdentityID: identity.ID,
		TokenHash:  tokenHash,
		IDToken:    idToken,
		ExpiresAt:  expiresAt,
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return session, token, nil
}

func (s *iamService) Authenticate(ctx context.Context, bearerToken string) (*auth.Principal, error) {
	tokenHash := auth.HashBearerToken(bearerToken)

	session, err := s.sessions.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	identity, err := s.identities.GetByID(ctx, session.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	if err := auth.ValidateSession(session.ExpiresAt, session.Revoked, identity.DisabledAt != nil); err != nil {
		return nil, err
	}

	// Fail-closed: a resolution error denies authentication rather than
	// proceeding with a guessed role.
	role, err := s.ResolveRole(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	var roles []string
	if role != "" {
		roles = []string{role}
	}

	principal := &auth.Principal{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Name:       identity.Name,
		SessionID:  session.ID,
		Roles:      roles,
	}

	// Update session last used timestamp without blocking the request
	go func() {
		_ = s.sessions.UpdateLastUsed(context.Background(), session.ID)
	}()

	return principal, nil
}

func (s *iamService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

func (s *iamService) RevokeSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *iamService) RevokeAllSessions(ctx context.Context, identityID string) error {
	if err := s.sessions.RevokeByIdentityID(ctx, identityID); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}
	return nil
}

// =========================================================================
// Role Resolution (Request Path - Cached)
// =========================================================================

func (s *iamService) ResolveRole(ctx context.Context, identityID string) (string, error) {
	if role, ok := s.roleCache.get(identityID); ok {
		return role, nil
	}

	record, err := s.roleRecords.GetByIdentityID(ctx, identityID)
	if err != nil {
		// Errors are not cached; the next resolution retries the database
		return "", fmt.Errorf("get role record: %w", err)
	}

	role := ""
	if record != nil {
		role = record.Role
	}
	s.roleCache.set(identityID, role)
	return role, nil
}

func (s *iamService) SetRole(ctx context.Context, identityID, role string) error {
	if err := s.roleRecords.SetRole(ctx, identityID, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	// Invalidate after the write so the next resolution sees the new role
	s.roleCache.invalidate(identityID)
	return nil
}

func (s *iamService) InvalidateRole(identityID string) {
	s.roleCache.invalidate(identityID)
}

// =========================================================================
// Lookups (Admin Operations)
// =========================================================================

func (s *iamService) GetIdentityByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return s.identities.GetByEmail(ctx, email)
}

