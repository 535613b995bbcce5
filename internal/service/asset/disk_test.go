package asset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func TestPutStoresAndResolves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	content := []byte("fake png bytes")

	ref, err := store.Put(ctx, Upload{Content: bytes.NewReader(content), ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(ref, PublicPrefix+"/photo-") {
		t.Errorf("unexpected reference %q", ref)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("expected .png extension, got %q", ref)
	}

	p, err := store.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("stored content differs: %q", got)
	}
}

func TestPutExtensionFollowsContentType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := map[string]string{
		"image/png":  ".png",
		"image/jpg":  ".jpg",
		"image/jpeg": ".jpg",
		"IMAGE/PNG":  ".png",
	}
	for contentType, ext := range cases {
		ref, err := store.Put(ctx, Upload{Content: strings.NewReader("x"), ContentType: contentType})
		if err != nil {
			t.Fatalf("Put %s: %v", contentType, err)
		}
		if !strings.HasSuffix(ref, ext) {
			t.Errorf("%s: expected extension %s, got %q", contentType, ext, ref)
		}
	}
}

func TestAllowedType(t *testing.T) {
	for _, contentType := range []string{"image/png", "image/jpg", "image/jpeg", "IMAGE/PNG", " image/png "} {
		if !AllowedType(contentType) {
			t.Errorf("%q should be allowed", contentType)
		}
	}
	for _, contentType := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		if AllowedType(contentType) {
			t.Errorf("%q should be rejected", contentType)
		}
	}
}

func TestPutRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, contentType := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		_, err := store.Put(ctx, Upload{Content: strings.NewReader("x"), ContentType: contentType})
		if !errors.Is(err, ErrUnsupportedMediaType) {
			t.Errorf("%q: expected ErrUnsupportedMediaType, got %v", contentType, err)
		}
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected uploads must leave nothing behind, found %d entries", len(entries))
	}
}

func TestPutEnforcesSizeLimitWithoutPartialWrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	oversized := bytes.NewReader(make([]byte, MaxUploadBytes+1))
	_, err := store.Put(ctx, Upload{Content: oversized, ContentType: "image/jpeg"})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("oversized upload must not leave a partial file, found %d entries", len(entries))
	}
}

func TestPutAcceptsExactLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exact := bytes.NewReader(make([]byte, MaxUploadBytes))
	ref, err := store.Put(ctx, Upload{Content: exact, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Put at exact limit: %v", err)
	}
	p, err := store.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != MaxUploadBytes {
		t.Errorf("expected %d bytes, got %d", MaxUploadBytes, info.Size())
	}
}

func TestPutGeneratesDistinctRefs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for range 20 {
		ref, err := store.Put(ctx, Upload{Content: strings.NewReader("x"), ContentType: "image/png"})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Put(ctx, Upload{Content: strings.NewReader("x"), ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	p, _ := store.Resolve(ref)
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat returned %v", err)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Errorf("repeat delete must succeed, got %v", err)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	store := newTestStore(t)

	bad := []string{
		"",
		"photo-1-abc.png",
		"/uploads/",
		"/uploads/../secrets",
		"/uploads/sub/photo.png",
		"/uploads/.hidden",
		"/elsewhere/photo.png",
	}
	for _, ref := range bad {
		if _, err := store.Resolve(ref); !errors.Is(err, ErrInvalidRef) {
			t.Errorf("%q: expected ErrInvalidRef, got %v", ref, err)
		}
	}

	p, err := store.Resolve("/uploads/photo-1-abc.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filepath.Dir(p) != store.Dir() {
		t.Errorf("resolved path %q escapes %q", p, store.Dir())
	}
}
