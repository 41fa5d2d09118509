// Package store provides the persistent key-value storage port backing the
// account registry, the session pointer, and the post collection.
//
// Keys are versioned so a future schema change can migrate by switching to a
// new key while leaving old records untouched.
package store

import "context"

// Versioned storage keys. The values are part of the persisted format and
// must not change within a schema version.
const (
	UsersKey   = "trinethra_users_v2"
	SessionKey = "trinethra_active_user_v2"
	PostsKey   = "trinethra_posts_v2"
)

// Store is the persistence port. Values are encoded as JSON. Implementations
// must treat a value that fails to decode the same as an absent key; corrupt
// persisted data must never surface as a crash.
type Store interface {
	// Get decodes the value stored under key into dest and reports whether
	// a usable value was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set replaces the value stored under key in a single write.
	Set(ctx context.Context, key string, value any) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
