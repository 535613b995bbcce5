package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aushadx/profile-directory/internal/service/asset"
	"github.com/aushadx/profile-directory/internal/service/document"
)

// fakeAssetStore records operations and allows failure injection.
type fakeAssetStore struct {
	putErr    error
	deleteErr error

	putCount int
	deleted  []string
}

func (f *fakeAssetStore) Put(ctx context.Context, upload asset.Upload) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	if _, err := io.Copy(io.Discard, upload.Content); err != nil {
		return "", err
	}
	f.putCount++
	return fmt.Sprintf("/uploads/photo-%d-fake.png", f.putCount), nil
}

func (f *fakeAssetStore) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

func (f *fakeAssetStore) Resolve(ref string) (string, error) {
	return "", asset.ErrInvalidRef
}

func submission(name string) Submission {
	return Submission{
		Name:        name,
		Age:         "30",
		Gender:      "F",
		BloodGroup:  "O+",
		DateOfBirth: "1994-01-01",
	}
}

func pngUpload() *asset.Upload {
	return &asset.Upload{Content: strings.NewReader("png bytes"), ContentType: "image/png"}
}

func TestSaveWithoutPhoto(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	rec, err := dir.Save(ctx, submission("Alice"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.PhotoPath != nil {
		t.Errorf("expected nil photo path, got %q", *rec.PhotoPath)
	}
	if assets.putCount != 0 {
		t.Errorf("no photo submitted but asset store was written %d times", assets.putCount)
	}
}

func TestSaveStoresPhoto(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	rec, err := dir.Save(ctx, submission("Alice"), pngUpload())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.PhotoPath == nil || *rec.PhotoPath != "/uploads/photo-1-fake.png" {
		t.Errorf("unexpected photo path %v", rec.PhotoPath)
	}
	if len(assets.deleted) != 0 {
		t.Errorf("first save must not delete anything, got %v", assets.deleted)
	}
}

func TestSavePreservesPhotoWhenNoneSubmitted(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	if _, err := dir.Save(ctx, submission("Alice"), pngUpload()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, err := dir.Save(ctx, submission("Alice"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.PhotoPath == nil || *rec.PhotoPath != "/uploads/photo-1-fake.png" {
		t.Errorf("photo must survive an update without one, got %v", rec.PhotoPath)
	}
	if len(assets.deleted) != 0 {
		t.Errorf("nothing was replaced, yet deletes happened: %v", assets.deleted)
	}
}

func TestSaveReclaimsDisplacedPhotoAfterCommit(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	if _, err := dir.Save(ctx, submission("Alice"), pngUpload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := dir.Save(ctx, submission("Alice"), pngUpload())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if rec.PhotoPath == nil || *rec.PhotoPath != "/uploads/photo-2-fake.png" {
		t.Errorf("expected new photo stored, got %v", rec.PhotoPath)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != "/uploads/photo-1-fake.png" {
		t.Errorf("expected the displaced photo reclaimed, got %v", assets.deleted)
	}

	stored, err := docs.Find(ctx, "Alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if *stored.PhotoPath != "/uploads/photo-2-fake.png" {
		t.Errorf("stored record points at %q", *stored.PhotoPath)
	}
}

func TestSavePhotoFailureLeavesDocumentUntouched(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{putErr: asset.ErrTooLarge}
	dir := New(docs, assets)
	ctx := context.Background()

	_, err := dir.Save(ctx, submission("Alice"), pngUpload())
	if !errors.Is(err, asset.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := docs.Find(ctx, "Alice"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("document store must not have been written, Find returned %v", err)
	}
}

func TestSaveDisplacedCleanupFailureIsSwallowed(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	if _, err := dir.Save(ctx, submission("Alice"), pngUpload()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	assets.deleteErr = errors.New("disk on fire")
	rec, err := dir.Save(ctx, submission("Alice"), pngUpload())
	if err != nil {
		t.Fatalf("cleanup failure must not fail the save: %v", err)
	}
	if rec.PhotoPath == nil || *rec.PhotoPath != "/uploads/photo-2-fake.png" {
		t.Errorf("unexpected photo path %v", rec.PhotoPath)
	}
}

func TestDeleteReclaimsPhoto(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	if _, err := dir.Save(ctx, submission("Alice"), pngUpload()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := dir.Delete(ctx, "Alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(assets.deleted) != 1 || assets.deleted[0] != "/uploads/photo-1-fake.png" {
		t.Errorf("expected photo reclaimed on delete, got %v", assets.deleted)
	}
	if _, err := dir.Get(ctx, "Alice"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteAbsentName(t *testing.T) {
	dir := New(document.NewMemoryStore(), &fakeAssetStore{})

	if err := dir.Delete(context.Background(), "Nobody"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSwallowsAssetCleanupFailure(t *testing.T) {
	docs := document.NewMemoryStore()
	assets := &fakeAssetStore{}
	dir := New(docs, assets)
	ctx := context.Background()

	if _, err := dir.Save(ctx, submission("Alice"), pngUpload()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	assets.deleteErr = errors.New("disk on fire")
	if err := dir.Delete(ctx, "Alice"); err != nil {
		t.Fatalf("asset cleanup failure must not surface: %v", err)
	}
	if _, err := dir.Get(ctx, "Alice"); !errors.Is(err, document.ErrNotFound) {
		t.Errorf("document delete is authoritative, Get returned %v", err)
	}
}

func TestShareText(t *testing.T) {
	mc := "Asthma"
	rec := &document.Record{
		Name:              "Alice",
		Age:               "30",
		Gender:            "F",
		BloodGroup:        "O+",
		DateOfBirth:       "1994-01-01",
		MedicalConditions: &mc,
	}

	got := ShareText(rec)
	want := "User Details:\n" +
		"Name: Alice\n" +
		"Age: 30\n" +
		"Gender: F\n" +
		"Blood Group: O+\n" +
		"Date of Birth: 1994-01-01\n" +
		"Medical Conditions: Asthma\n" +
		"Health Insurance: None"
	if got != want {
		t.Errorf("ShareText mismatch:\n got: %q\nwant: %q", got, want)
	}
}

var _ asset.Store = (*fakeAssetStore)(nil)
