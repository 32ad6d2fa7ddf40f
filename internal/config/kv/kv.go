// Package kv is the persistence boundary for binding overrides: a string
// key/value store holding one JSON blob per storage key.
package kv

import "errors"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("kv: store closed")

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(key, value string) error
}
