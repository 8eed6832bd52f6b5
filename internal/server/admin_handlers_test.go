package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
)

func TestAdminListGating(t *testing.T) {
	ts := newTestServer(t)
	member := ts.signUp(t, "member@example.org", "hunter2x")
	admin := ts.signUpAdmin(t, "admin@example.org", "hunter2x")

	paths := []string{"/api/members", "/api/donations", "/api/events", "/api/contact"}

	t.Run("anonymous is 401", func(t *testing.T) {
		for _, path := range paths {
			resp, _ := ts.request(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		}
	})

	t.Run("member is 403", func(t *testing.T) {
		for _, path := range paths {
			resp, _ := ts.request(t, http.MethodGet, path, member, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		}
	})

	t.Run("admin is 200", func(t *testing.T) {
		for _, path := range paths {
			resp, _ := ts.request(t, http.MethodGet, path, admin, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})
}

func TestAdminListFilter(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.signUpAdmin(t, "filter-admin@example.org", "hunter2x")

	for _, email := range []string{"a@example.org", "b@example.org"} {
		resp, _ := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
			"first_name": "Test",
			"last_name":  "Member",
			"email":      email,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("filter matches", func(t *testing.T) {
		filter := url.QueryEscape(`email == "a@example.org"`)
		resp, raw := ts.request(t, http.MethodGet, "/api/members?filter="+filter, admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var body struct {
			Data []models.Member `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "a@example.org", body.Data[0].Email)
	})

	t.Run("status filter", func(t *testing.T) {
		filter := url.QueryEscape(`status == "pending"`)
		resp, raw := ts.request(t, http.MethodGet, "/api/members?filter="+filter, admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []models.Member `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Len(t, body.Data, 2)
	})

	t.Run("invalid expression is 400", func(t *testing.T) {
		filter := url.QueryEscape(`status === broken(`)
		resp, _ := ts.request(t, http.MethodGet, "/api/members?filter="+filter, admin, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPatchAndDeleteMember(t *testing.T) {
	ts := newTestServer(t)
	member := ts.signUp(t, "plain@example.org", "hunter2x")
	admin := ts.signUpAdmin(t, "crud-admin@example.org", "hunter2x")

	resp, raw := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
		"first_name": "Rohan",
		"last_name":  "Das",
		"email":      "rohan@example.org",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Member `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	id := created.Data.ID

	t.Run("member cannot mutate", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/members", member, map[string]any{
			"id":     id,
			"status": "approved",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin approves", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPatch, "/api/members", admin, map[string]any{
			"id":     id,
			"status": "approved",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		var body struct {
			Data models.Member `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, models.MemberStatusApproved, body.Data.Status)
	})

	t.Run("invalid status is 400", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/members", admin, map[string]any{
			"id":     id,
			"status": "archived",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/members", admin, map[string]any{
			"id":     "00000000-0000-0000-0000-000000000000",
			"status": "approved",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("admin deletes", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodDelete, "/api/members?id="+id, admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = ts.request(t, http.MethodDelete, "/api/members?id="+id, admin, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSetUserRoleEndpoint(t *testing.T) {
	ts := newTestServer(t)
	member := ts.signUp(t, "target@example.org", "hunter2x")
	admin := ts.signUpAdmin(t, "role-admin@example.org", "hunter2x")

	t.Run("member cannot change roles", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/users", member, map[string]any{
			"email": "target@example.org",
			"role":  "admin",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous cannot change roles", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/users", "", map[string]any{
			"email": "target@example.org",
			"role":  "admin",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("role round-trip", func(t *testing.T) {
		// Promote via the admin endpoint, then observe the new role through
		// the target's own role lookup: the cache entry must be invalidated
		// by the mutation.
		resp, raw := ts.request(t, http.MethodPatch, "/api/users", admin, map[string]any{
			"email": "target@example.org",
			"role":  "admin",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

		resp, raw = ts.request(t, http.MethodGet, "/api/users/role", member, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body RoleResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		require.NotNil(t, body.Role)
		assert.Equal(t, "admin", *body.Role)
	})

	t.Run("invalid role is 400", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/users", admin, map[string]any{
			"email": "target@example.org",
			"role":  "owner",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPatch, "/api/users", admin, map[string]any{
			"email": "ghost@example.org",
			"role":  "admin",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
