package iam

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultRoleCacheTTL bounds how stale a cached role can be. Role changes
// invalidate the entry immediately on this instance; the TTL covers changes
// made by other instances sharing the database.
const DefaultRoleCacheTTL = 30 * time.Second

// defaultRoleCacheSize bounds memory for the role cache. Entries are tiny,
// so this comfortably covers the active user population.
const defaultRoleCacheSize = 4096

// roleCache caches identity→role lookups with a short TTL.
//
// The zero value of a role ("") is a valid cached result: it records that
// the identity has no role record, so repeated lookups for role-less
// identities do not hit the database on every request.
//
// Errors are never cached. A failed lookup falls through to the database on
// the next resolution.
type roleCache struct {
	lru *expirable.LRU[string, string]
}

func newRoleCache(ttl time.Duration) *roleCache {
	if ttl <= 0 {
		ttl = DefaultRoleCacheTTL
	}
	return &roleCache{
		lru: expirable.NewLRU[string, string](defaultRoleCacheSize, nil, ttl),
	}
}

// get returns the cached role and whether the entry was present.
func (c *roleCache) get(identityID string) (string, bool) {
	return c.lru.Get(identityID)
}

// set stores the resolved role (possibly "") for an identity.
func (c *roleCache) set(identityID, role string) {
	c.lru.Add(identityID, role)
}

// invalidate drops the entry for an identity.
func (c *roleCache) invalidate(identityID string) {
	c.lru.Remove(identityID)
}
