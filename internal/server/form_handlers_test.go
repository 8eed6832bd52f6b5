package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
)

func TestCreateMemberEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid application", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
			"first_name": "Priya",
			"last_name":  "Nair",
			"email":      "priya@example.org",
			"interest":   "volunteering",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

		var body struct {
			Success bool          `json:"success"`
			Data    models.Member `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Data.ID)
		assert.Equal(t, models.MemberStatusPending, body.Data.Status)
	})

	t.Run("missing required field is 400", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
			"first_name": "Priya",
			"email":      "priya@example.org",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, body.Error, "validation failed")
	})

	t.Run("status cannot be set by the form", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
			"first_name": "Priya",
			"last_name":  "Nair",
			"email":      "priya@example.org",
			"status":     "approved",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateDonationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("defaults applied", func(t *testing.T) {
		resp, raw := ts.request(t, http.MethodPost, "/api/donations", "", map[string]any{
			"donor_name":  "Kiran Rao",
			"donor_email": "kiran@example.org",
			"amount":      500,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

		var body struct {
			Data models.Donation `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "INR", body.Data.Currency)
		assert.Equal(t, "completed", body.Data.Status)
	})

	t.Run("non-positive amount is 400", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/donations", "", map[string]any{
			"donor_name":  "Kiran Rao",
			"donor_email": "kiran@example.org",
			"amount":      0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateEventRegistrationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.request(t, http.MethodPost, "/api/events", "", map[string]any{
		"event_name":        "Annual Health Camp",
		"participant_name":  "Sana Iyer",
		"participant_email": "sana@example.org",
		"num_guests":        2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body struct {
		Data models.EventRegistration `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "registered", body.Data.Status)
	assert.Equal(t, 2, body.Data.NumGuests)
}

func TestCreateContactMessageEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.request(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name":    "Vikram Mehta",
		"email":   "vikram@example.org",
		"message": "How can I volunteer?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body struct {
		Data models.ContactMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "new", body.Data.Status)
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.signUpAdmin(t, "stats-admin@example.org", "hunter2x")

	// One pending application via the public form
	resp, raw := ts.request(t, http.MethodPost, "/api/members", "", map[string]any{
		"first_name": "Pending",
		"last_name":  "Applicant",
		"email":      "pending@example.org",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Member `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	// Approve it through the admin endpoint
	resp, _ = ts.request(t, http.MethodPatch, "/api/members", admin, map[string]any{
		"id":     created.Data.ID,
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = ts.request(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 1, stats.Members)
	assert.Equal(t, 1, stats.Users)
}
