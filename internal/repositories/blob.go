// Package repositories provides the durable storage backends the store
// persists its serialized state through. Every backend stores opaque
// named blobs; encoding and schema versioning belong to the caller.
package repositories

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Load when nothing is stored under a name.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is implemented by every backend in this package.
type BlobStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Close() error
}
