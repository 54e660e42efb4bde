// Package kv is the persistence boundary: a small string key-value store with
// atomic batch writes. Values are opaque strings; typed access lives in
// internal/database/repository.
package kv

import "context"

// Store is the key-value contract the rest of the app persists through.
type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// GetMany omits absent keys from the result.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
	// Clear erases every key.
	Clear(ctx context.Context) error
}
