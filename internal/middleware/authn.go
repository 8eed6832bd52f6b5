package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
)

// BearerAuth authenticates requests carrying an Authorization: Bearer header.
//
// This middleware:
//  1. Extracts the bearer token from the Authorization header
//  2. Resolves it to a Principal via the IAM service (session lookup,
//     validation, role resolution)
//  3. Sets the Principal in the request context
//
// Requests without an Authorization header pass through unauthenticated;
// the authorization middleware decides whether that is acceptable for the
// route. Requests with an invalid or malformed bearer are rejected with 401,
// matching the behavior clients rely on for cache teardown.
func BearerAuth(iamService iam.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			principal, err := iamService.Authenticate(r.Context(), token)
			if err != nil {
				log.Printf("authentication failed for %s %s: %v", r.Method, r.URL.Path, err)
				writeError(w, http.StatusUnauthorized, "authentication failed")
				return
			}

			ctx := auth.SetPrincipalContext(r.Context(), *principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes the uniform {"error": "..."} body used across the API.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
