package asset

import (
	"context"
	"errors"
	"io"
)

// Store errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooLarge             = errors.New("payload exceeds size limit")
	ErrInvalidRef           = errors.New("invalid asset reference")
)

// MaxUploadBytes caps the size of a single photo upload.
const MaxUploadBytes = 5 << 20 // 5 MiB

// Upload is an incoming photo payload. ContentType is the client-declared
// MIME type; it is checked against the accepted image types before any bytes
// are read from Content.
type Upload struct {
	Content     io.Reader
	ContentType string
}

// Store manages binary photo blobs independently of profile documents.
// Asset lifetimes are driven entirely by the owning record; the store never
// garbage-collects on its own.
type Store interface {
	// Put persists the upload and returns a collision-resistant asset
	// reference. It fails with ErrUnsupportedMediaType before reading any
	// bytes, and with ErrTooLarge without leaving a partial file behind.
	Put(ctx context.Context, upload Upload) (string, error)

	// Delete removes the referenced asset. Deleting a missing asset is not
	// an error, so cleanup retries stay safe.
	Delete(ctx context.Context, ref string) error

	// Resolve maps an asset reference to the absolute path it is served from.
	Resolve(ref string) (string, error)
}
