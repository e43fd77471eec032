package object

import (
	"context"
	"io"
)

// Store defines the contract for saving and retrieving binary blobs.
type Store interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// PublicURL resolves a storage key to a URL a browser can fetch.
	PublicURL(storageKey string) string
}
