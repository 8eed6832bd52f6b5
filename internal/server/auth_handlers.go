package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
)

// CredentialsRequest represents the body of signup and login requests.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// UserResponse represents identity data in API responses.
type UserResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name,omitempty"`
	Role  *string `json:"role"`
}

// SessionResponse carries the minted session back to the client.
type SessionResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	IDToken     string       `json:"id_token"`
	ExpiresAt   int64        `json:"expires_at"` // unix millis
}

// WhoamiResponse represents the response from GET /api/auth/whoami.
type WhoamiResponse struct {
	User    UserResponse `json:"user"`
	Session struct {
		ID        string `json:"id"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"session"`
}

// RoleResponse is the body of GET /api/users/role. A null role means the
// identity has no role record; clients treat it as "signed in, no tier".
type RoleResponse struct {
	Role *string `json:"role"`
}

func userResponse(identityID, email, name, role string) UserResponse {
	resp := UserResponse{ID: identityID, Email: email, Name: name}
	if role != "" {
		resp.Role = &role
	}
	return resp
}

func sessionResponse(ctx context.Context, iamService iam.Service, identity *models.Identity, session *models.Session, token string) SessionResponse {
	// Role resolution failure degrades to no role; the session itself is valid
	role, err := iamService.ResolveRole(ctx, identity.ID)
	if err != nil {
		log.Printf("role resolution failed for identity %s: %v", identity.ID, err)
		role = ""
	}

	return SessionResponse{
		User:        userResponse(identity.ID, identity.Email, identity.Name, role),
		AccessToken: token,
		IDToken:     session.IDToken,
		ExpiresAt:   session.ExpiresAt.UnixMilli(),
	}
}

// HandleSignUp registers a new identity and signs it in.
func HandleSignUp(iamService iam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		identity, err := iamService.SignUp(ctx, req.Email, req.Password, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, iam.ErrPasswordTooShort):
				respondError(w, http.StatusBadRequest, iam.ErrPasswordTooShort.Error())
			case errors.Is(err, iam.ErrEmailTaken):
				respondError(w, http.StatusConflict, iam.ErrEmailTaken.Error())
			default:
				log.Printf("signup failed for %s: %v", req.Email, err)
				respondError(w, http.StatusInternalServerError, "signup failed")
			}
			return
		}

		session, token, err := iamService.CreateSession(ctx, identity, r.UserAgent(), r.RemoteAddr)
		if err != nil {
			log.Printf("session creation failed after signup for %s: %v", identity.ID, err)
			respondError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		respondSuccess(w, http.StatusCreated, sessionResponse(ctx, iamService, identity, session, token))
	}
}

// HandleLogin verifies credentials and mints a bearer session.
func HandleLogin(iamService iam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		identity, err := iamService.Login(ctx, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, iam.ErrInvalidCredentials), errors.Is(err, iam.ErrIdentityDisabled):
				respondError(w, http.StatusUnauthorized, "invalid credentials")
			case errors.Is(err, iam.ErrUnverified):
				// Distinguishable from bad credentials: by the time the
				// verified check runs the password has already matched.
				respondError(w, http.StatusUnauthorized, iam.ErrUnverified.Error())
			default:
				log.Printf("login failed for %s: %v", req.Email, err)
				respondError(w, http.StatusInternalServerError, "login failed")
			}
			return
		}

		session, token, err := iamService.CreateSession(ctx, identity, r.UserAgent(), r.RemoteAddr)
		if err != nil {
			log.Printf("session creation failed for %s: %v", identity.ID, err)
			respondError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		respondSuccess(w, http.StatusOK, sessionResponse(ctx, iamService, identity, session, token))
	}
}

// HandleLogout revokes the presented session. With ?scope=global every
// session of the identity is revoked, signing the identity out everywhere.
func HandleLogout(iamService iam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal, ok := auth.PrincipalFromContext(ctx)
		if !ok {
			respondError(w, http.StatusUnauthorized, "no active session")
			return
		}

		var err error
		if r.URL.Query().Get("scope") == "global" {
			err = iamService.RevokeAllSessions(ctx, principal.IdentityID)
		} else {
			err = iamService.RevokeSession(ctx, principal.SessionID)
		}
		if err != nil {
			log.Printf("logout failed for identity %s: %v", principal.IdentityID, err)
			respondError(w, http.StatusInternalServerError, "failed to revoke session")
			return
		}

		// The cached role may outlive the session on other instances only
		// until the TTL; on this instance drop it now.
		iamService.InvalidateRole(principal.IdentityID)

		respondSuccess(w, http.StatusOK, nil)
	}
}

// HandleWhoAmI returns the authenticated identity and session metadata.
// Clients call this to validate a persisted token during initialization.
// The identity fields come from the session's signed ID token, so the
// response reflects exactly what the session was minted for.
func HandleWhoAmI(iamService iam.Service, idTokenSecret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal, ok := auth.PrincipalFromContext(ctx)
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}

		session, err := iamService.GetSession(ctx, principal.SessionID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "session not found")
			return
		}

		rawClaims, err := auth.ParseIDToken(idTokenSecret, session.IDToken)
		if err != nil {
			log.Printf("id token verification failed for session %s: %v", session.ID, err)
			respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}
		claims, err := auth.DecodeIdentityClaims(rawClaims)
		if err != nil {
			log.Printf("id token claims rejected for session %s: %v", session.ID, err)
			respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		role := ""
		if len(principal.Roles) > 0 {
			role = principal.Roles[0]
		}

		resp := WhoamiResponse{
			User: userResponse(claims.Subject, claims.Email, claims.Name, role),
		}
		resp.Session.ID = session.ID
		resp.Session.ExpiresAt = session.ExpiresAt.UnixMilli()

		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleUserRole returns the caller's role as {"role": string|null}.
//
// 401 when the Authorization header is missing or the token is invalid.
// A valid identity without a role record gets {"role": null}, never an
// error: clients resolve that to "no role" rather than failing.
func HandleUserRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}

		var resp RoleResponse
		if len(principal.Roles) > 0 {
			resp.Role = &principal.Roles[0]
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
