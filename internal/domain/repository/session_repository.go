package repository

import "context"

// Keys under which the admin session is persisted.
const (
	SessionAuthKey    = "Auth"
	SessionProfileKey = "user"
)

// SessionStore is durable key/value storage for the admin session, the
// equivalent of the browser's local storage.
type SessionStore interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value
	Set(ctx context.Context, key, value string) error

	// Keys lists the stored keys
	Keys(ctx context.Context) ([]string, error)

	// Delete removes a key; a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage
	Close() error
}
