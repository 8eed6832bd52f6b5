package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"

	"github.com/helpinghands-foundation/hhf/internal/auth"
)

// RequireAuth rejects unauthenticated requests with 401.
// Place after BearerAuth on routes that need a signed-in principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission enforces a Casbin policy check for the route.
//
// The principal's roles were resolved once at authentication time; this
// check is a read-only policy evaluation with no shared-state mutation.
// Unauthenticated requests get 401, authenticated-but-unauthorized get 403.
// Enforcement errors deny: a failed policy evaluation is never a grant.
func RequirePermission(enforcer casbin.IEnforcer, obj, act string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !auth.Allowed(enforcer, principal.Roles, obj, act) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
