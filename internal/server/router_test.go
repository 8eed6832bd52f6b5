package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/migrations"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
	"github.com/helpinghands-foundation/hhf/internal/services/validation"
)

// testIDTokenSecret signs and verifies identity tokens in tests.
var testIDTokenSecret = []byte("test-secret")

type testServer struct {
	server     *httptest.Server
	iam        iam.Service
	identities repository.IdentityRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	iamService, err := iam.NewService(iam.ServiceDependencies{
		Identities:  repository.NewBunIdentityRepository(db),
		Sessions:    repository.NewBunSessionRepository(db),
		RoleRecords: repository.NewBunRoleRecordRepository(db),
	}, iam.ServiceConfig{
		SessionDuration: time.Hour,
		IDTokenSecret:   testIDTokenSecret,
	})
	require.NoError(t, err)

	enforcer, err := auth.InitEnforcer(db)
	require.NoError(t, err)

	validator, err := validation.NewFormValidator()
	require.NoError(t, err)

	router := NewRouter(RouterOptions{
		IAM:           iamService,
		Enforcer:      enforcer,
		Validator:     validator,
		IDTokenSecret: testIDTokenSecret,
		Members:       repository.NewBunMemberRepository(db),
		Donations:     repository.NewBunDonationRepository(db),
		Events:        repository.NewBunEventRegistrationRepository(db),
		Messages:      repository.NewBunContactMessageRepository(db),
		Identities:    repository.NewBunIdentityRepository(db),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		server:     srv,
		iam:        iamService,
		identities: repository.NewBunIdentityRepository(db),
	}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// signUp registers an identity through the API and returns its bearer token.
func (ts *testServer) signUp(t *testing.T, email, password string) string {
	t.Helper()

	resp, raw := ts.request(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

// signUpAdmin registers an identity and promotes it to admin directly via
// the IAM service, bypassing the admin-gated endpoint for bootstrap.
func (ts *testServer) signUpAdmin(t *testing.T, email, password string) string {
	t.Helper()

	token := ts.signUp(t, email, password)

	identity, err := ts.iam.GetIdentityByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, ts.iam.SetRole(context.Background(), identity.ID, models.RoleAdmin))
	return token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "OK", string(raw))
}
