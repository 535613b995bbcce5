package document

import (
	"context"
	"encoding/base64"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const profilesCollection = "profiles"

// firestoreProfile maps to the Firestore document structure. The verbatim
// name is stored inside the document because the document ID is an encoded
// form of it (see docID).
type firestoreProfile struct {
	Name              string    `firestore:"name"`
	Age               string    `firestore:"age"`
	Gender            string    `firestore:"gender"`
	BloodGroup        string    `firestore:"blood_group"`
	DateOfBirth       string    `firestore:"date_of_birth"`
	MedicalConditions *string   `firestore:"medical_conditions"`
	HealthInsurance   *string   `firestore:"health_insurance"`
	PhotoPath         *string   `firestore:"photo"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

// FirestoreStore implements Store using Firestore transactions, which give
// the per-name serialization and uniqueness the contract requires without
// any in-process locking: multiple stateless instances can share one store.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// docID derives a Firestore document ID from a profile name. Document IDs
// cannot contain "/" and may not be "." or "..", while a profile name is any
// non-empty string, so the name is passed through URL-safe base64. The
// encoding is injective, which keeps the uniqueness constraint intact.
func docID(name string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(name))
}

func (s *FirestoreStore) doc(name string) *firestore.DocumentRef {
	return s.client.Collection(profilesCollection).Doc(docID(name))
}

// Create inserts a new record, rejecting an existing name inside the same
// transaction that observes it.
func (s *FirestoreStore) Create(ctx context.Context, name string, params UpsertParams) (*Record, error) {
	docRef := s.doc(name)
	now := time.Now().UTC()

	var result *Record
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		rec := newRecord(name, params, now)
		if err := tx.Set(docRef, toFirestore(rec)); err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert creates or merges the record in a single transaction so concurrent
// writes to the same name serialize with last-writer-wins semantics.
func (s *FirestoreStore) Upsert(ctx context.Context, name string, params UpsertParams) (*Record, string, error) {
	docRef := s.doc(name)
	now := time.Now().UTC()

	var (
		result    *Record
		displaced string
	)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		displaced = ""

		doc, err := tx.Get(docRef)
		switch {
		case err == nil && doc.Exists():
			var fp firestoreProfile
			if err := doc.DataTo(&fp); err != nil {
				return err
			}
			rec := fromFirestore(fp)
			if params.PhotoPath != nil && rec.PhotoPath != nil && *rec.PhotoPath != *params.PhotoPath {
				displaced = *rec.PhotoPath
			}
			rec.apply(params, now)
			result = rec
		case err != nil && status.Code(err) != codes.NotFound:
			return err
		default:
			result = newRecord(name, params, now)
		}

		return tx.Set(docRef, toFirestore(result))
	})
	if err != nil {
		return nil, "", err
	}
	return result, displaced, nil
}

// Find retrieves a record by exact name.
func (s *FirestoreStore) Find(ctx context.Context, name string) (*Record, error) {
	doc, err := s.doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fromFirestore(fp), nil
}

// List returns every stored record.
func (s *FirestoreStore) List(ctx context.Context) ([]Record, error) {
	iter := s.client.Collection(profilesCollection).Documents(ctx)
	defer iter.Stop()

	records := []Record{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		records = append(records, *fromFirestore(fp))
	}
	return records, nil
}

// Delete removes the record transactionally and returns its prior contents.
func (s *FirestoreStore) Delete(ctx context.Context, name string) (*Record, error) {
	docRef := s.doc(name)

	var result *Record
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}
		result = fromFirestore(fp)
		return tx.Delete(docRef)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toFirestore(r *Record) firestoreProfile {
	return firestoreProfile{
		Name:              r.Name,
		Age:               r.Age,
		Gender:            r.Gender,
		BloodGroup:        r.BloodGroup,
		DateOfBirth:       r.DateOfBirth,
		MedicalConditions: r.MedicalConditions,
		HealthInsurance:   r.HealthInsurance,
		PhotoPath:         r.PhotoPath,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func fromFirestore(fp firestoreProfile) *Record {
	return &Record{
		Name:              fp.Name,
		Age:               fp.Age,
		Gender:            fp.Gender,
		BloodGroup:        fp.BloodGroup,
		DateOfBirth:       fp.DateOfBirth,
		MedicalConditions: fp.MedicalConditions,
		HealthInsurance:   fp.HealthInsurance,
		PhotoPath:         fp.PhotoPath,
		CreatedAt:         fp.CreatedAt,
		UpdatedAt:         fp.UpdatedAt,
	}
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
