package sdk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const roleCacheFile = "role.json"

// RoleCache persists the last resolved role so the next process start can
// render optimistically before resolution completes. The cached value is
// advisory only: security decisions always wait for a fresh resolution,
// which supersedes whatever was read here.
type RoleCache struct {
	path string
}

type roleCachePayload struct {
	Role string `json:"role"`
}

// NewRoleCache creates a RoleCache backed by ~/.hhf/role.json.
func NewRoleCache() (*RoleCache, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return NewRoleCacheAt(dir)
}

// NewRoleCacheAt creates a RoleCache rooted at dir.
func NewRoleCacheAt(dir string) (*RoleCache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &RoleCache{path: filepath.Join(dir, roleCacheFile)}, nil
}

// Write stores a resolved role. Callers only write after a successful
// resolution; optimistic values never flow back in.
func (c *RoleCache) Write(role string) error {
	data, err := json.Marshal(roleCachePayload{Role: role})
	if err != nil {
		return fmt.Errorf("failed to marshal role cache: %w", err)
	}
	return os.WriteFile(c.path, data, 0600)
}

// ReadInitial returns the cached role for optimistic first render.
// The second return reports whether a cached value existed.
func (c *RoleCache) ReadInitial() (string, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}
	var payload roleCachePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}
	if payload.Role == "" {
		return "", false
	}
	return payload.Role, true
}

// Clear removes the cached role. Clearing an already-empty cache is a no-op.
func (c *RoleCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear role cache: %w", err)
	}
	return nil
}
