package auth

import "context"

// Principal captures the authenticated identity propagated through the
// request context. It is immutable after construction: the role list is
// resolved once at authentication time, so authorization decisions never
// read shared mutable state.
type Principal struct {
	// IdentityID references the backing identities row.
	IdentityID string
	// Email is the identity's email address.
	Email string
	// Name is the optional display name.
	Name string
	// SessionID references the active sessions row.
	SessionID string
	// Roles lists the resolved role values (e.g. "member", "admin").
	// Empty when the identity has no role record.
	Roles []string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

type principalContextKey struct{}

// SetPrincipalContext stores the authenticated principal on the context.
func SetPrincipalContext(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
