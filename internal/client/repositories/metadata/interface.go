// Package metadata is the local key/value table of the CLI. The session
// credentials (access and refresh token) live here between runs.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store.
//
//   - Get on a missing key returns (nil, nil).
//   - Put writes all entries in one statement, so they land together.
//   - Delete of missing keys is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}
