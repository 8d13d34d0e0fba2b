package cache

import "errors"

// ErrQuotaExceeded is returned by a Store when a write would push it
// past its configured size quota.
var ErrQuotaExceeded = errors.New("store quota exceeded")

// Store is a string-keyed persistent store with string values.
// Implementations may enforce a byte quota on writes.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores or replaces a value. Returns ErrQuotaExceeded when
	// the write would exceed the store's quota.
	Set(key, value string) error
	// Delete removes a key; deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists every key starting with the given prefix.
	Keys(prefix string) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}
