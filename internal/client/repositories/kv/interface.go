// Package kv is the string key/value table of the local session database.
package kv

import "context"

type Repository interface {
	// Get reports ok=false with a nil error when key is not stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
