package sdk

import "context"

// Role is an authorization tier as resolved for a session.
type Role string

// Resolved role values. RoleUnknown covers every failure mode: no session,
// no role record, transport errors, and malformed responses.
const (
	RoleUnknown Role = ""
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
)

// RoleResolver resolves the role behind a session by asking the server.
// Resolution is fail-closed: any failure degrades to RoleUnknown and is
// never reported as an error, so a broken backend can not grant access.
type RoleResolver struct {
	client *Client
}

// NewRoleResolver creates a resolver backed by the given API client.
func NewRoleResolver(client *Client) *RoleResolver {
	return &RoleResolver{client: client}
}

// Resolve returns the role for the session, or RoleUnknown when the session
// is absent, the token is blank, or the lookup fails in any way.
func (r *RoleResolver) Resolve(ctx context.Context, session *Session) Role {
	if session == nil || session.AccessToken == "" {
		return RoleUnknown
	}

	role, err := r.client.Role(ctx, session.AccessToken)
	if err != nil || role == nil {
		return RoleUnknown
	}

	switch Role(*role) {
	case RoleMember, RoleAdmin:
		return Role(*role)
	default:
		return RoleUnknown
	}
}
