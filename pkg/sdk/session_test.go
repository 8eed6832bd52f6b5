package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the identity endpoints of hhfapi.
type fakeAPI struct {
	t        *testing.T
	server   *httptest.Server
	requests atomic.Int64

	// validToken is accepted by whoami; everything else is 401.
	validToken string
	// logoutBlock, when non-nil, blocks the logout handler until closed.
	logoutBlock chan struct{}
	logouts     atomic.Int64
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, validToken: "valid-token"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		api.writeSession(w, http.StatusCreated, r)
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter2x" {
			writeJSONError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		api.writeSession(w, http.StatusOK, r)
	})
	mux.HandleFunc("GET /api/auth/whoami", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+api.validToken {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"user":{"id":"u1","email":"me@example.org","name":"Me","role":"member"},"session":{"id":"s1","expires_at":%d}}`,
			time.Now().Add(time.Hour).UnixMilli())
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if api.logoutBlock != nil {
			<-api.logoutBlock
		}
		api.logouts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (api *fakeAPI) writeSession(w http.ResponseWriter, status int, r *http.Request) {
	var req credentialsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	role := "member"
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":true,"data":{"user":{"id":"u1","email":%q,"name":%q,"role":%q},"access_token":%q,"id_token":"id-token","expires_at":%d}}`,
		req.Email, req.Name, role, api.validToken, time.Now().Add(time.Hour).UnixMilli())
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

func newTestStore(t *testing.T, api *fakeAPI) (*SessionStore, *FileCredentialStore, *RoleCache) {
	t.Helper()

	dir := t.TempDir()
	creds, err := NewFileCredentialStoreAt(dir)
	require.NoError(t, err)
	cache, err := NewRoleCacheAt(dir)
	require.NoError(t, err)

	client := NewClient(api.server.URL, WithHTTPClient(api.server.Client()))
	return NewSessionStore(client, creds, cache), creds, cache
}

func TestSessionStoreSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("short password rejected locally", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, _ := newTestStore(t, api)

		_, err := store.SignUp(ctx, "me@example.org", "abc12", "abc12", "")
		require.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Zero(t, api.requests.Load(), "local validation must not hit the network")
	})

	t.Run("mismatched confirmation rejected locally", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, _ := newTestStore(t, api)

		_, err := store.SignUp(ctx, "me@example.org", "hunter2x", "hunter2y", "")
		require.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Zero(t, api.requests.Load())
	})

	t.Run("successful signup persists and notifies", func(t *testing.T) {
		api := newFakeAPI(t)
		store, creds, _ := newTestStore(t, api)

		var seen []*Session
		store.OnChange(func(s *Session) { seen = append(seen, s) })

		session, err := store.SignUp(ctx, "me@example.org", "hunter2x", "hunter2x", "Me")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "me@example.org", session.User.Email)

		saved, err := creds.LoadCredentials()
		require.NoError(t, err)
		assert.Equal(t, session.AccessToken, saved.AccessToken)

		require.Len(t, seen, 1)
		assert.Same(t, session, seen[0])
	})
}

func TestSessionStoreSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, _ := newTestStore(t, api)

		session, err := store.SignIn(ctx, "me@example.org", "hunter2x")
		require.NoError(t, err)
		assert.Equal(t, session, store.Current())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, _ := newTestStore(t, api)

		_, err := store.SignIn(ctx, "me@example.org", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, store.Current())
	})
}

func TestSessionStoreInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("no credentials clears role cache", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, cache := newTestStore(t, api)
		require.NoError(t, cache.Write("admin"))

		session, err := store.Initialize(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)

		_, ok := cache.ReadInitial()
		assert.False(t, ok, "stale role must not survive a signed-out start")
	})

	t.Run("valid persisted credentials restore the session", func(t *testing.T) {
		api := newFakeAPI(t)
		store, creds, _ := newTestStore(t, api)
		require.NoError(t, creds.SaveCredentials(&Credentials{
			AccessToken: api.validToken,
			ExpiresAt:   time.Now().Add(time.Hour),
		}))

		session, err := store.Initialize(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "me@example.org", session.User.Email)
	})

	t.Run("rejected token purges credentials", func(t *testing.T) {
		api := newFakeAPI(t)
		store, creds, _ := newTestStore(t, api)
		require.NoError(t, creds.SaveCredentials(&Credentials{
			AccessToken: "revoked-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		}))

		session, err := store.Initialize(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)

		_, err = creds.LoadCredentials()
		require.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("expired credentials are purged without a network call", func(t *testing.T) {
		api := newFakeAPI(t)
		store, creds, _ := newTestStore(t, api)
		require.NoError(t, creds.SaveCredentials(&Credentials{
			AccessToken: api.validToken,
			ExpiresAt:   time.Now().Add(-time.Minute),
		}))

		session, err := store.Initialize(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Zero(t, api.requests.Load())
	})
}

func TestSessionStoreSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("local state cleared before any network call", func(t *testing.T) {
		api := newFakeAPI(t)
		api.logoutBlock = make(chan struct{})
		store, creds, cache := newTestStore(t, api)

		_, err := store.SignIn(ctx, "me@example.org", "hunter2x")
		require.NoError(t, err)
		require.NoError(t, cache.Write("member"))

		var sawNil bool
		store.OnChange(func(s *Session) { sawNil = s == nil })

		// The logout endpoint is blocked, so everything observed here
		// happened strictly before the server processed the revoke.
		target := store.SignOut(ctx)
		assert.Equal(t, HomePath, target)
		assert.Nil(t, store.Current())
		assert.True(t, sawNil, "listener must observe the nil session")

		_, err = creds.LoadCredentials()
		require.ErrorIs(t, err, ErrNotLoggedIn)
		_, ok := cache.ReadInitial()
		assert.False(t, ok)
		assert.Zero(t, api.logouts.Load())

		close(api.logoutBlock)
		require.Eventually(t, func() bool { return api.logouts.Load() == 1 },
			2*time.Second, 10*time.Millisecond)
	})

	t.Run("server failure does not resurrect local state", func(t *testing.T) {
		api := newFakeAPI(t)
		store, creds, _ := newTestStore(t, api)

		_, err := store.SignIn(ctx, "me@example.org", "hunter2x")
		require.NoError(t, err)

		// Kill the server so the detached revoke fails outright.
		api.server.Close()

		target := store.SignOut(ctx)
		assert.Equal(t, HomePath, target)
		assert.Nil(t, store.Current())

		_, err = creds.LoadCredentials()
		require.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("sign out while signed out is safe", func(t *testing.T) {
		api := newFakeAPI(t)
		store, _, _ := newTestStore(t, api)

		target := store.SignOut(ctx)
		assert.Equal(t, HomePath, target)
		assert.Zero(t, api.logouts.Load())
	})
}
