package document

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/aushadx/profile-directory/internal/testutil"
)

func newFirestoreStore(t *testing.T) *FirestoreStore {
	t.Helper()
	testutil.SkipIfEmulatorUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	client, err := firestore.NewClient(context.Background(), testutil.ProjectID)
	if err != nil {
		t.Fatalf("creating firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewFirestoreStore(client)
}

func TestFirestoreUpsertRoundTrip(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	params := baseParams()
	params.MedicalConditions = strptr("asthma")
	created, displaced, err := store.Upsert(ctx, "Alice", params)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if displaced != "" {
		t.Errorf("create must not displace a photo, got %q", displaced)
	}

	found, err := store.Find(ctx, "Alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Name != "Alice" || found.Age != created.Age {
		t.Errorf("round trip mismatch: %+v vs %+v", found, created)
	}
	if found.MedicalConditions == nil || *found.MedicalConditions != "asthma" {
		t.Errorf("optional field lost in round trip: %v", found.MedicalConditions)
	}
	if found.HealthInsurance != nil {
		t.Errorf("unset optional came back non-nil: %v", *found.HealthInsurance)
	}
}

func TestFirestoreUpsertMergePreservesOptionals(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	params := baseParams()
	params.PhotoPath = strptr("/uploads/photo-1-a.png")
	if _, _, err := store.Upsert(ctx, "Alice", params); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	update := baseParams()
	update.Age = "31"
	rec, displaced, err := store.Upsert(ctx, "Alice", update)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if displaced != "" {
		t.Errorf("no new photo submitted, got displaced %q", displaced)
	}
	if rec.Age != "31" {
		t.Errorf("required field not overwritten: %s", rec.Age)
	}
	if rec.PhotoPath == nil || *rec.PhotoPath != "/uploads/photo-1-a.png" {
		t.Errorf("photo lost on merge: %v", rec.PhotoPath)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one document, got %d", len(all))
	}
}

func TestFirestoreUpsertReportsDisplacedPhoto(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	params := baseParams()
	params.PhotoPath = strptr("/uploads/photo-1-a.png")
	if _, _, err := store.Upsert(ctx, "Alice", params); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	params.PhotoPath = strptr("/uploads/photo-2-b.png")
	_, displaced, err := store.Upsert(ctx, "Alice", params)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if displaced != "/uploads/photo-1-a.png" {
		t.Errorf("expected old photo displaced, got %q", displaced)
	}
}

func TestFirestoreCreateConflict(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "Alice", baseParams()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, "Alice", baseParams()); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFirestoreNamesSurviveEncoding(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	// Names that are illegal as raw document IDs must still work as keys.
	names := []string{"a/b", ".", "..", "Alice Smith", "नमस्ते", "Alice", "alice"}
	for _, name := range names {
		if _, _, err := store.Upsert(ctx, name, baseParams()); err != nil {
			t.Fatalf("Upsert %q: %v", name, err)
		}
	}

	for _, name := range names {
		rec, err := store.Find(ctx, name)
		if err != nil {
			t.Fatalf("Find %q: %v", name, err)
		}
		if rec.Name != name {
			t.Errorf("name came back as %q, want %q", rec.Name, name)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(names) {
		t.Errorf("expected %d distinct documents, got %d", len(names), len(all))
	}
}

func TestFirestoreDelete(t *testing.T) {
	store := newFirestoreStore(t)
	ctx := context.Background()

	params := baseParams()
	params.PhotoPath = strptr("/uploads/photo-1-a.png")
	if _, _, err := store.Upsert(ctx, "Alice", params); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	deleted, err := store.Delete(ctx, "Alice")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.PhotoPath == nil || *deleted.PhotoPath != "/uploads/photo-1-a.png" {
		t.Errorf("delete must return prior contents, got %+v", deleted)
	}

	if _, err := store.Find(ctx, "Alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.Delete(ctx, "Alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting the absent name again must be ErrNotFound, got %v", err)
	}
}
