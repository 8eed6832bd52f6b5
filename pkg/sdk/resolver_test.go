package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithHTTPClient(srv.Client()))
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("nil session is unknown", func(t *testing.T) {
		resolver := NewRoleResolver(NewClient("http://127.0.0.1:1"))
		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, nil))
	})

	t.Run("blank token is unknown without network", func(t *testing.T) {
		calls := 0
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{}))
		assert.Zero(t, calls)
	})

	t.Run("resolves admin", func(t *testing.T) {
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/users/role", r.URL.Path)
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"role":"admin"}`))
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleAdmin, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})

	t.Run("null role is unknown", func(t *testing.T) {
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"role":null}`))
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})

	t.Run("server error is unknown, never admin", func(t *testing.T) {
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})

	t.Run("malformed body is unknown", func(t *testing.T) {
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})

	t.Run("unreachable server is unknown", func(t *testing.T) {
		resolver := NewRoleResolver(NewClient("http://127.0.0.1:1"))
		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})

	t.Run("unrecognized role value is unknown", func(t *testing.T) {
		client := roleServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"role":"superuser"}`))
		})
		resolver := NewRoleResolver(client)

		assert.Equal(t, RoleUnknown, resolver.Resolve(ctx, &Session{AccessToken: "tok"}))
	})
}
