package asset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix stored photos are served under. Asset
// references embed it so a reference doubles as the public fetch path,
// matching what the mobile client stores and renders.
const PublicPrefix = "/uploads"

// extByType whitelists the accepted image types and fixes the stored
// extension per type, regardless of the uploaded filename.
var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpg",
}

// AllowedType reports whether a declared MIME type is an accepted image
// type, so other image-accepting endpoints can apply the same gate.
func AllowedType(contentType string) bool {
	_, ok := extByType[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

// DiskStore implements Store on a flat directory of uploaded files.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{dir: abs}, nil
}

// Dir returns the absolute directory backing the store, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// newRef generates a reference that cannot collide across concurrent
// uploads: millisecond timestamp plus a random UUID segment plus the
// extension implied by the declared type. A replaced photo therefore always
// gets a fresh reference instead of overwriting the old file in place.
func newRef(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("photo-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// Put streams the upload to a temporary file and renames it into place, so a
// failed or oversized upload never leaves a partial asset behind.
func (s *DiskStore) Put(ctx context.Context, upload Upload) (string, error) {
	ext, ok := extByType[strings.ToLower(strings.TrimSpace(upload.ContentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, upload.ContentType)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, io.LimitReader(upload.Content, MaxUploadBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if written > MaxUploadBytes {
		_ = os.Remove(tmpName)
		return "", ErrTooLarge
	}

	name := newRef(ext)
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("storing upload: %w", err)
	}

	return path.Join(PublicPrefix, name), nil
}

// Delete removes the referenced file. A missing file is not an error.
func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	p, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing asset: %w", err)
	}
	return nil
}

// Resolve maps a reference back to its absolute file path, rejecting
// anything that would escape the upload directory.
func (s *DiskStore) Resolve(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, PublicPrefix+"/")
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(s.dir, name), nil
}

// Compile-time interface check
var _ Store = (*DiskStore)(nil)
