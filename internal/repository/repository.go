package repository

import "errors"

// ErrClosed is returned by operations on a closed repository
var ErrClosed = errors.New("repository is closed")

// Repository is the durable key-value store behind local storage.
// Values are opaque strings (JSON documents in practice).
type Repository interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set creates or overwrites the value under key.
	Set(key, value string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists stored keys in ascending order.
	Keys() ([]string, error)
	Close() error
}
