package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/helpinghands-foundation/hhf/internal/auth/bunadapter"
	"github.com/uptrace/bun"
)

//go:embed model.conf
var casbinModelContent string

// Objects protected by the authorization layer.
const (
	ObjectMembers   = "members"
	ObjectDonations = "donations"
	ObjectEvents    = "events"
	ObjectMessages  = "messages"
	ObjectUsers     = "users"
)

// Actions checked against the policy set.
const (
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const rolePrefix = "role:"

// RoleID converts a role record value into its Casbin subject identifier.
func RoleID(role string) string {
	return rolePrefix + role
}

// InitEnforcer creates a Casbin enforcer backed by the shared bun connection.
// Policies live in the casbin_rules table (seeded by migrations) so that
// operators can extend the grants without a deploy. The enforcer is used
// read-only in the request path; request-time state never mutates it.
func InitEnforcer(db *bun.DB) (casbin.IEnforcer, error) {
	adapter, err := bunadapter.NewAdapter(db)
	if err != nil {
		return nil, fmt.Errorf("create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}
	enforcer.EnableAutoSave(false)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policies: %w", err)
	}

	return enforcer, nil
}

// Allowed reports whether any of the given roles grants act on obj.
// Errors from the enforcer deny: authorization failures are never a grant.
func Allowed(enforcer casbin.IEnforcer, roles []string, obj, act string) bool {
	for _, role := range roles {
		ok, err := enforcer.Enforce(RoleID(role), obj, act)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
