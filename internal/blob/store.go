// Package blob provides opaque blob storage for uploaded images.
package blob

import (
	"context"
	"io"
)

// Store is an opaque blob store keyed by path. The place and user flows
// only ever put, remove, and reference blobs; content is never inspected.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}
