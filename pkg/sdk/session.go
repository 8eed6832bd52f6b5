package sdk

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// HomePath is the navigation target reported after sign-out.
const HomePath = "/"

// SessionStore owns the client-side session lifecycle: loading persisted
// credentials, signing in and out, and notifying listeners on every
// session transition.
type SessionStore struct {
	client *Client
	creds  CredentialStore
	roles  *RoleCache

	mu       sync.Mutex
	session  *Session
	notifyMu sync.Mutex
	onChange []func(*Session)
}

// NewSessionStore creates a SessionStore. The role cache is optional; when
// nil, role cache maintenance is skipped.
func NewSessionStore(client *Client, creds CredentialStore, roles *RoleCache) *SessionStore {
	return &SessionStore{
		client: client,
		creds:  creds,
		roles:  roles,
	}
}

// Current returns the in-memory session, or nil when signed out.
func (s *SessionStore) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// OnChange registers a listener fired once per session transition with the
// newest session (nil on sign-out or expiry). Listeners run serially.
func (s *SessionStore) OnChange(fn func(*Session)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// setSession records the new session and notifies listeners. The notify
// mutex keeps listener invocations serial across concurrent transitions.
func (s *SessionStore) setSession(session *Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for _, fn := range s.onChange {
		fn(session)
	}
}

// Initialize loads persisted credentials and validates them against the
// server. It returns the restored session, or nil when no valid session
// exists. A load without a session clears the cached role so no stale
// role value survives a signed-out start.
func (s *SessionStore) Initialize(ctx context.Context) (*Session, error) {
	creds, err := s.creds.LoadCredentials()
	if err != nil {
		if !errors.Is(err, ErrNotLoggedIn) {
			log.Printf("Warning: failed to load credentials: %v", err)
		}
		s.clearLocal()
		s.setSession(nil)
		return nil, nil
	}

	if creds.IsExpired() {
		s.clearLocal()
		_ = s.creds.DeleteCredentials()
		s.setSession(nil)
		return nil, nil
	}

	whoami, err := s.client.Whoami(ctx, creds.AccessToken)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// Server rejected the persisted token; treat as signed out.
			s.clearLocal()
			_ = s.creds.DeleteCredentials()
			s.setSession(nil)
			return nil, nil
		}
		// Transport failure: report it rather than destroying credentials
		// that may still be valid.
		return nil, err
	}

	session := &Session{
		User:        whoami.User,
		AccessToken: creds.AccessToken,
		IDToken:     creds.IDToken,
		ExpiresAt:   time.UnixMilli(whoami.Session.ExpiresAt),
	}
	s.setSession(session)
	return session, nil
}

// SignIn exchanges credentials for a session, persists it, and notifies
// listeners. Returns ErrInvalidCredentials on a rejected login.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*Session, error) {
	session, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.persist(session)
	s.setSession(session)
	return session, nil
}

// SignUp registers a new identity and signs it in. Local validation runs
// first: a short password or a mismatched confirmation is rejected without
// any network traffic.
func (s *SessionStore) SignUp(ctx context.Context, email, password, confirm, name string) (*Session, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if confirm != "" && confirm != password {
		return nil, ErrPasswordMismatch
	}

	session, err := s.client.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.persist(session)
	s.setSession(session)
	return session, nil
}

// SignOut signs the current session out. The order is load-bearing:
// in-memory state and the role cache are cleared synchronously, persisted
// artifacts are purged, and only then does the global revoke fire as a
// detached background call whose failure is logged only. Listeners observe
// the nil session before any network I/O happens. The returned path is the
// hard navigation target for the caller.
func (s *SessionStore) SignOut(ctx context.Context) string {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	s.clearLocal()
	s.setSession(nil)

	if err := s.creds.DeleteCredentials(); err != nil {
		log.Printf("Warning: failed to delete credentials: %v", err)
	}

	if session != nil && session.AccessToken != "" {
		token := session.AccessToken
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if err := s.client.SignOut(ctx, token, true); err != nil {
				log.Printf("Warning: server-side sign-out failed: %v", err)
			}
		}()
	}

	return HomePath
}

// clearLocal clears the persisted role cache.
func (s *SessionStore) clearLocal() {
	if s.roles == nil {
		return
	}
	if err := s.roles.Clear(); err != nil {
		log.Printf("Warning: failed to clear role cache: %v", err)
	}
}

// persist stores the session's credentials, logging failures only: a
// broken credentials file must not block an otherwise successful sign-in.
func (s *SessionStore) persist(session *Session) {
	err := s.creds.SaveCredentials(&Credentials{
		AccessToken: session.AccessToken,
		IDToken:     session.IDToken,
		ExpiresAt:   session.ExpiresAt,
		Email:       session.User.Email,
	})
	if err != nil {
		log.Printf("Warning: failed to persist credentials: %v", err)
	}
}
