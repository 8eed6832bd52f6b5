package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// DefaultSessionDuration is the default session lifetime.
	DefaultSessionDuration = 12 * time.Hour

	// TokenLength is the length of generated bearer tokens in bytes.
	TokenLength = 32
)

// GenerateBearerToken generates a cryptographically secure random bearer token.
// Returns: token (hex string), token hash (SHA256 hex), error.
func GenerateBearerToken() (string, string, error) {
	tokenBytes := make([]byte, TokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("generate random token: %w", err)
	}

	token := hex.EncodeToString(tokenBytes)
	return token, HashBearerToken(token), nil
}

// HashBearerToken hashes a bearer token for storage and lookup.
// Only the SHA256 hex hash is ever persisted.
func HashBearerToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidateSession performs session validation: expiration, revocation, and
// identity status. Any failure means the bearer authenticates as nothing.
func ValidateSession(expiresAt time.Time, revoked bool, identityDisabled bool) error {
	if time.Now().After(expiresAt) {
		return fmt.Errorf("session expired")
	}
	if revoked {
		return fmt.Errorf("session revoked")
	}
	if identityDisabled {
		return fmt.Errorf("identity disabled")
	}
	return nil
}
