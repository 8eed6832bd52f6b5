package sdk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const credentialsFile = "credentials.json"

// Credentials represents the persisted authentication credentials.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	IDToken     string    `json:"id_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	Email       string    `json:"email,omitempty"`
}

func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// CredentialStore persists credentials between invocations.
type CredentialStore interface {
	SaveCredentials(credentials *Credentials) error
	LoadCredentials() (*Credentials, error)
	DeleteCredentials() error
}

// ErrNotLoggedIn is returned by LoadCredentials when no credentials exist.
var ErrNotLoggedIn = fmt.Errorf("not logged in")

// FileCredentialStore implements CredentialStore using a JSON file.
type FileCredentialStore struct {
	path string
}

// Ensure FileCredentialStore implements CredentialStore at compile time.
var _ CredentialStore = (*FileCredentialStore)(nil)

// NewFileCredentialStore creates a CredentialStore backed by
// ~/.hhf/credentials.json. The directory is created when missing.
func NewFileCredentialStore() (*FileCredentialStore, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return NewFileCredentialStoreAt(dir)
}

// NewFileCredentialStoreAt creates a CredentialStore rooted at dir.
func NewFileCredentialStoreAt(dir string) (*FileCredentialStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}
	return &FileCredentialStore{path: filepath.Join(dir, credentialsFile)}, nil
}

// SaveCredentials saves the credentials to the file.
func (s *FileCredentialStore) SaveCredentials(credentials *Credentials) error {
	data, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// LoadCredentials loads the credentials from the file.
func (s *FileCredentialStore) LoadCredentials() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

// DeleteCredentials deletes the credentials file.
func (s *FileCredentialStore) DeleteCredentials() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}

// configDir returns the per-user configuration directory.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".hhf"), nil
}
