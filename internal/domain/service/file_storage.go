package service

import (
	"context"
	"io"
)

// FileStorage defines the interface for storing the uploaded sauce images.
// This abstracts the storage backend (local disk, object store) from the
// use cases.
type FileStorage interface {
	// Store saves the content under a name derived from suggestedName and
	// returns the public URL of the stored file.
	Store(ctx context.Context, content io.Reader, suggestedName string) (string, error)

	// Remove deletes the file behind a previously returned URL.
	Remove(ctx context.Context, url string) error
}
