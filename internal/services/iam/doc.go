// Package iam provides identity and access management services for the
// foundation API.
//
// The IAM service centralizes authentication, session lifecycle, and role
// resolution:
//
//   - Email/password sign-up and login (bcrypt)
//   - Bearer session management (opaque tokens, SHA-256 hashed at rest)
//   - Role resolution against the role_records table with a short-TTL cache
//   - Role mutation with immediate cache invalidation
//
// The key design principle is that the role is resolved ONCE at
// authentication time and stored in the Principal struct. Authorization then
// uses the pre-resolved roles via read-only Casbin evaluation without
// mutating any shared state.
//
// A missing role record is a valid state, not an error: the identity
// authenticates normally and resolves to no role. Resolution errors fail
// closed, so a principal whose role cannot be determined is treated as
// having no role.
package iam
