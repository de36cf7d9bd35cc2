package storage

import (
	"context"
	"io"
)

// FileStorage abstracts where attendance proof photos live. The local
// implementation serves development; an object-store implementation can be
// swapped in behind the same interface.
type FileStorage interface {
	// Upload stores a file under path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns a public URL for a stored key.
	URL(path string) string
}
