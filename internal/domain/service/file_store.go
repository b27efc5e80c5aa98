package service

import (
	"context"
	"io"
)

// FileStore defines the interface for storing binary assets such as
// product images. Implementations back onto blob storage.
type FileStore interface {
	// Save writes the content under the given key and returns a URL the
	// asset can be fetched from.
	Save(ctx context.Context, key string, contentType string, content io.Reader) (string, error)

	// Delete removes the asset stored under the given key.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
