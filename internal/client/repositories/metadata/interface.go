// Package metadata is the local key-value store. The client keeps its
// session token here between runs.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Replace sets key and returns the value it held before, if any.
	Replace(ctx context.Context, key string, value string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
