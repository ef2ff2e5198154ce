// Package storage provides the key/value backends behind the ignore store.
package storage

import "errors"

// ErrEmptyKey is returned when a backend is asked for an empty key.
var ErrEmptyKey = errors.New("storage: empty key")

// Backend is a persistent string key/value store. Get reports whether the key
// exists; a missing key is not an error.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}
