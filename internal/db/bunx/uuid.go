package bunx

import "github.com/google/uuid"

// NewUUIDv7 generates a time-ordered UUIDv7 string for database primary keys.
// Time-ordered IDs sort well in indexes and work on both PostgreSQL and
// SQLite, which has no gen_random_uuid().
//
// Panics if UUID generation fails; that only happens when the entropy source
// is exhausted, at which point nothing else can operate safely either.
func NewUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
