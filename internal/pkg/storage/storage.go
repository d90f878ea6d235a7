package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("stored object not found")
	ErrInvalidPath = errors.New("storage path escapes the storage root")
)

// Storage keeps uploaded blobs under slash-separated relative keys such as
// "gallery/ab/ab12...jpg".
type Storage interface {
	Save(ctx context.Context, key string, content io.Reader) error
	// Open returns the blob for key, or ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
