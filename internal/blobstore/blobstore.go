// Package blobstore defines the key/value byte store the application state is
// persisted to.
package blobstore

import "context"

// BlobStore stores opaque values by key. Get returns nil, nil for a key that
// has never been written; Delete of a missing key is not an error.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
