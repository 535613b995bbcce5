package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	applog "github.com/aushadx/profile-directory/internal/platform/logging"
	"github.com/aushadx/profile-directory/internal/service/asset"
	"github.com/aushadx/profile-directory/internal/service/document"
)

// Service exposes the profile directory operations the HTTP layer composes.
type Service interface {
	// Save validates nothing itself; callers run ParseSubmission first. It
	// stores an attached photo before touching the document store, upserts
	// the record, and reclaims a displaced photo only after the document
	// write has committed.
	Save(ctx context.Context, sub Submission, photo *asset.Upload) (*document.Record, error)

	// Get returns the record for an exact name match.
	Get(ctx context.Context, name string) (*document.Record, error)

	// List returns every record; the directory is a single small personal
	// directory, so there is no pagination.
	List(ctx context.Context) ([]document.Record, error)

	// Delete removes the record and best-effort reclaims its photo. The
	// document-level delete is authoritative: photo cleanup failures are
	// logged and swallowed.
	Delete(ctx context.Context, name string) error
}

// Directory implements Service over a document store and an asset store.
// It holds no locks of its own; per-name write serialization belongs to the
// document store, so any number of stateless Directory instances can share
// the same backing stores.
type Directory struct {
	docs   document.Store
	assets asset.Store
}

// New creates a Directory over the given stores.
func New(docs document.Store, assets asset.Store) *Directory {
	return &Directory{docs: docs, assets: assets}
}

// Save writes a validated submission. Ordering is deliberate:
//
//  1. A new photo is stored first; if that fails the document is untouched.
//  2. The document upsert commits, pointing at the new photo.
//  3. Only then is a displaced old photo deleted, so the record is never
//     observable pointing at a reference that does not resolve.
//
// When no photo is attached, a previously stored photo is preserved.
func (d *Directory) Save(ctx context.Context, sub Submission, photo *asset.Upload) (*document.Record, error) {
	var photoPath *string
	if photo != nil {
		ref, err := d.assets.Put(ctx, *photo)
		if err != nil {
			applog.LogAuditEvent(ctx, "upsert", "profile", sub.Name, applog.AuditFailure,
				map[string]any{"stage": "photo", "error": categorizeError(err)})
			return nil, err
		}
		photoPath = &ref
	}

	rec, displaced, err := d.docs.Upsert(ctx, sub.Name, document.UpsertParams{
		Age:               sub.Age,
		Gender:            sub.Gender,
		BloodGroup:        sub.BloodGroup,
		DateOfBirth:       sub.DateOfBirth,
		MedicalConditions: sub.MedicalConditions,
		HealthInsurance:   sub.HealthInsurance,
		PhotoPath:         photoPath,
	})
	if err != nil {
		// The document was not mutated; reclaim the just-written photo so
		// the failure leaves no new file behind. Best-effort.
		if photoPath != nil {
			if cleanupErr := d.assets.Delete(ctx, *photoPath); cleanupErr != nil {
				applog.LogWarn(ctx, "orphaned photo left after failed upsert",
					zap.String("photo", *photoPath), zap.Error(cleanupErr))
			}
		}
		applog.LogAuditEvent(ctx, "upsert", "profile", sub.Name, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	if displaced != "" {
		if err := d.assets.Delete(ctx, displaced); err != nil {
			applog.LogWarn(ctx, "replaced photo cleanup failed",
				zap.String("photo", displaced), zap.Error(err))
		}
	}

	applog.LogAuditEvent(ctx, "upsert", "profile", sub.Name, applog.AuditSuccess, nil)
	return rec, nil
}

func (d *Directory) Get(ctx context.Context, name string) (*document.Record, error) {
	return d.docs.Find(ctx, name)
}

func (d *Directory) List(ctx context.Context) ([]document.Record, error) {
	return d.docs.List(ctx)
}

func (d *Directory) Delete(ctx context.Context, name string) error {
	rec, err := d.docs.Delete(ctx, name)
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", "profile", name, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return err
	}

	// The document delete already committed; an asset cleanup failure can
	// at worst orphan a file on disk, never a document, so it is logged
	// rather than surfaced.
	if rec.PhotoPath != nil {
		if err := d.assets.Delete(ctx, *rec.PhotoPath); err != nil {
			applog.LogWarn(ctx, "photo cleanup failed on delete",
				zap.String("photo", *rec.PhotoPath), zap.Error(err))
			applog.LogAuditEvent(ctx, "delete", "photo", *rec.PhotoPath, applog.AuditFailure,
				map[string]any{"error": "io_failure"})
		}
	}

	applog.LogAuditEvent(ctx, "delete", "profile", name, applog.AuditSuccess, nil)
	return nil
}

// ShareText composes the plain-text profile summary the mobile client sends
// over SMS or Bluetooth. Absent optional fields render as "None".
func ShareText(rec *document.Record) string {
	var b strings.Builder
	b.WriteString("User Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", rec.Name)
	fmt.Fprintf(&b, "Age: %s\n", rec.Age)
	fmt.Fprintf(&b, "Gender: %s\n", rec.Gender)
	fmt.Fprintf(&b, "Blood Group: %s\n", rec.BloodGroup)
	fmt.Fprintf(&b, "Date of Birth: %s\n", rec.DateOfBirth)
	fmt.Fprintf(&b, "Medical Conditions: %s\n", orNone(rec.MedicalConditions))
	fmt.Fprintf(&b, "Health Insurance: %s", orNone(rec.HealthInsurance))
	return b.String()
}

func orNone(v *string) string {
	if v == nil || *v == "" {
		return "None"
	}
	return *v
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, document.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, document.ErrNotFound):
		return "not_found"
	case errors.Is(err, asset.ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.Is(err, asset.ErrTooLarge):
		return "too_large"
	default:
		return "internal_error"
	}
}

// Compile-time interface check
var _ Service = (*Directory)(nil)
