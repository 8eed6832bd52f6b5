package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Identity represents an authentication principal: the email/password record
// managed by the identity side of the platform. It carries no authorization
// data; the role lives in a separate RoleRecord row so that a
// missing role record degrades to "no role" instead of blocking sign-in.
type Identity struct {
	bun.BaseModel `bun:"table:identities,alias:ident"`

	ID           string     `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string     `bun:"email,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"` // bcrypt hash
	Name         string     `bun:"name"`
	VerifiedAt   *time.Time `bun:"verified_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
	LastLoginAt  *time.Time `bun:"last_login_at"`
	DisabledAt   *time.Time `bun:"disabled_at"`
}

// RoleRecord maps an identity to its authorization tier. Created as a
// best-effort side effect of sign-up (defaulting to "member"); an identity
// without a RoleRecord resolves to no role, never to an error.
type RoleRecord struct {
	bun.BaseModel `bun:"table:role_records,alias:rr"`

	IdentityID string    `bun:"identity_id,pk,type:uuid"` // FK to identities(id)
	Email      string    `bun:"email,notnull"`
	Role       string    `bun:"role,notnull,default:'member'"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Role values stored in role_records. Anything else is treated as unknown by
// consumers and resolves fail-closed.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Session tracks an active bearer session for an identity. The raw token is
// never stored; lookups go through the SHA-256 hash.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:sess"`

	ID         string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	IdentityID string    `bun:"identity_id,notnull,type:uuid"` // FK to identities(id)
	TokenHash  string    `bun:"token_hash,notnull,unique"`     // SHA256 hash of bearer token
	IDToken    string    `bun:"id_token,type:text"`            // signed HS256 identity token
	ExpiresAt  time.Time `bun:"expires_at,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	LastUsedAt time.Time `bun:"last_used_at,notnull,default:current_timestamp"`
	UserAgent  *string   `bun:"user_agent"`
	IPAddress  *string   `bun:"ip_address"`
	Revoked    bool      `bun:"revoked,notnull,default:false"`
}
