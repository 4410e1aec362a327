package service

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for storing uploaded files and producing
// time-limited download links. Implementations are thin adapters over an
// object store; no file content processing happens here.
type BlobStore interface {
	// Put streams the content to the store under the given key.
	Put(ctx context.Context, key string, content io.Reader, contentType string) error

	// SignedURL returns a URL granting read access to the key until the TTL elapses.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
