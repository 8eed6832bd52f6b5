package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors surfaced by the authentication methods.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnverified         = errors.New("email not verified")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// unverifiedMessage is the server's error body for a sign-in against an
// account whose email is not verified. Both failures arrive as 401; the
// message is what tells them apart.
const unverifiedMessage = "email not verified"

// MinPasswordLength mirrors the server-side signup requirement so clients
// can reject short passwords without a network round trip.
const MinPasswordLength = 6

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client provides a typed interface to the foundation REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOptions configures client construction.
type ClientOptions struct {
	HTTPClient *http.Client
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// NewClient creates a client for the API server at baseURL. An http.Client
// with a sane timeout is created when one is not supplied.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: opts.HTTPClient,
	}
}

// --- Wire envelopes ---

type errorEnvelope struct {
	Error string `json:"error"`
}

type sessionEnvelope struct {
	Data sessionPayload `json:"data"`
}

type sessionPayload struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix milliseconds
}

func (p sessionPayload) session() *Session {
	return &Session{
		User:        p.User,
		AccessToken: p.AccessToken,
		IDToken:     p.IDToken,
		ExpiresAt:   time.UnixMilli(p.ExpiresAt),
	}
}

// do issues a request and decodes the response into out (when non-nil).
// Non-2xx responses are returned as *APIError carrying the server's
// error message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		message := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
			message = envelope.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// --- Identity ---

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// SignUp registers a new identity and returns its freshly minted session.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	var envelope sessionEnvelope
	err := c.do(ctx, http.MethodPost, "/auth/signup", "", credentialsRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &envelope)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return envelope.Data.session(), nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var envelope sessionEnvelope
	err := c.do(ctx, http.MethodPost, "/auth/login", "", credentialsRequest{
		Email:    email,
		Password: password,
	}, &envelope)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			if apiErr.Message == unverifiedMessage {
				return nil, ErrUnverified
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return envelope.Data.session(), nil
}

// SignOut revokes the presented session. With global set, every session of
// the identity is revoked.
func (c *Client) SignOut(ctx context.Context, token string, global bool) error {
	path := "/auth/logout"
	if global {
		path += "?scope=global"
	}
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

// Whoami validates a bearer token and returns the identity behind it.
func (c *Client) Whoami(ctx context.Context, token string) (*Whoami, error) {
	var out Whoami
	if err := c.do(ctx, http.MethodGet, "/api/auth/whoami", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Role returns the role recorded for the token's identity, or nil when the
// identity has no role record.
func (c *Client) Role(ctx context.Context, token string) (*string, error) {
	var out struct {
		Role *string `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/role", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Role, nil
}

// SetUserRole changes an identity's role. The identity is addressed by
// email. Admin only.
func (c *Client) SetUserRole(ctx context.Context, token, email, role string) error {
	body := map[string]string{"email": email, "role": role}
	return c.do(ctx, http.MethodPatch, "/api/users", token, body, nil)
}

// --- Public forms ---

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// SubmitMember submits a membership application through the public form.
func (c *Client) SubmitMember(ctx context.Context, form map[string]any) (*Member, error) {
	var envelope dataEnvelope[Member]
	if err := c.do(ctx, http.MethodPost, "/api/members", "", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// SubmitDonation records a donation through the public form.
func (c *Client) SubmitDonation(ctx context.Context, form map[string]any) (*Donation, error) {
	var envelope dataEnvelope[Donation]
	if err := c.do(ctx, http.MethodPost, "/api/donations", "", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// SubmitEventRegistration registers a participant for an event.
func (c *Client) SubmitEventRegistration(ctx context.Context, form map[string]any) (*EventRegistration, error) {
	var envelope dataEnvelope[EventRegistration]
	if err := c.do(ctx, http.MethodPost, "/api/events", "", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// SubmitContactMessage sends a contact form message.
func (c *Client) SubmitContactMessage(ctx context.Context, form map[string]any) (*ContactMessage, error) {
	var envelope dataEnvelope[ContactMessage]
	if err := c.do(ctx, http.MethodPost, "/api/contact", "", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Stats returns the public counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Admin listings and mutations ---

func listPath(base, filter string) string {
	if filter == "" {
		return base
	}
	return base + "?filter=" + url.QueryEscape(filter)
}

// ListMembers returns membership applications, newest first. An optional
// filter expression restricts the result server-side.
func (c *Client) ListMembers(ctx context.Context, token, filter string) ([]Member, error) {
	var envelope dataEnvelope[[]Member]
	if err := c.do(ctx, http.MethodGet, listPath("/api/members", filter), token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListDonations returns recorded donations, newest first.
func (c *Client) ListDonations(ctx context.Context, token, filter string) ([]Donation, error) {
	var envelope dataEnvelope[[]Donation]
	if err := c.do(ctx, http.MethodGet, listPath("/api/donations", filter), token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListEventRegistrations returns event registrations, newest first.
func (c *Client) ListEventRegistrations(ctx context.Context, token, filter string) ([]EventRegistration, error) {
	var envelope dataEnvelope[[]EventRegistration]
	if err := c.do(ctx, http.MethodGet, listPath("/api/events", filter), token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListContactMessages returns contact messages, newest first.
func (c *Client) ListContactMessages(ctx context.Context, token, filter string) ([]ContactMessage, error) {
	var envelope dataEnvelope[[]ContactMessage]
	if err := c.do(ctx, http.MethodGet, listPath("/api/contact", filter), token, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// PatchMember applies a partial update to a membership application.
func (c *Client) PatchMember(ctx context.Context, token string, patch MemberPatch) (*Member, error) {
	var envelope dataEnvelope[Member]
	if err := c.do(ctx, http.MethodPatch, "/api/members", token, patch, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteMember removes a membership application.
func (c *Client) DeleteMember(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/members?id="+url.QueryEscape(id), token, nil, nil)
}
