package document

import (
	"context"
	"errors"
	"time"
)

// Store errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile name already exists")
)

// Record is the canonical profile document. The name is the sole lookup key,
// case-sensitive and never normalized: "Alice" and "alice" are distinct
// profiles. Optional fields are nil when the caller never provided them,
// which is distinct from an explicitly empty value.
type Record struct {
	Name              string
	Age               string
	Gender            string
	BloodGroup        string
	DateOfBirth       string
	MedicalConditions *string
	HealthInsurance   *string
	PhotoPath         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UpsertParams carries the fields of a validated submission. Required fields
// always overwrite. A nil optional field leaves any stored value untouched on
// update; a nil PhotoPath preserves a previously stored photo.
type UpsertParams struct {
	Age               string
	Gender            string
	BloodGroup        string
	DateOfBirth       string
	MedicalConditions *string
	HealthInsurance   *string
	PhotoPath         *string
}

// Store persists profile records keyed by unique name.
//
// Implementations own concurrency control for a given key: two concurrent
// Upsert calls for the same name must serialize with last-writer-wins
// semantics, and at most one record may ever exist per name.
type Store interface {
	// Create inserts a new record and fails with ErrAlreadyExists when the
	// name is taken. It is not reachable from the HTTP surface, which writes
	// exclusively through Upsert, but guards any caller that bypasses it.
	Create(ctx context.Context, name string, params UpsertParams) (*Record, error)

	// Upsert creates the record on first write and merges fields in place on
	// every subsequent write. When params carries a new PhotoPath, the
	// previously stored photo reference is returned so the caller can
	// reclaim the displaced asset after the write has committed.
	Upsert(ctx context.Context, name string, params UpsertParams) (rec *Record, displacedPhoto string, err error)

	// Find returns the record for an exact name match or ErrNotFound.
	Find(ctx context.Context, name string) (*Record, error)

	// List returns every stored record.
	List(ctx context.Context) ([]Record, error)

	// Delete removes the record and returns its prior contents so the caller
	// can drive asset cleanup. Deleting an absent name is ErrNotFound.
	Delete(ctx context.Context, name string) (*Record, error)
}

// apply merges params into an existing record, preserving absent optionals.
func (r *Record) apply(params UpsertParams, now time.Time) {
	r.Age = params.Age
	r.Gender = params.Gender
	r.BloodGroup = params.BloodGroup
	r.DateOfBirth = params.DateOfBirth
	if params.MedicalConditions != nil {
		r.MedicalConditions = params.MedicalConditions
	}
	if params.HealthInsurance != nil {
		r.HealthInsurance = params.HealthInsurance
	}
	if params.PhotoPath != nil {
		r.PhotoPath = params.PhotoPath
	}
	r.UpdatedAt = now
}

// newRecord builds a fresh record from params.
func newRecord(name string, params UpsertParams, now time.Time) *Record {
	return &Record{
		Name:              name,
		Age:               params.Age,
		Gender:            params.Gender,
		BloodGroup:        params.BloodGroup,
		DateOfBirth:       params.DateOfBirth,
		MedicalConditions: params.MedicalConditions,
		HealthInsurance:   params.HealthInsurance,
		PhotoPath:         params.PhotoPath,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
