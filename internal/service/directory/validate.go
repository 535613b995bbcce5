package directory

import (
	"fmt"
	"net/url"
	"strings"
)

// requiredFields lists the form fields every submission must carry, in the
// order they are reported back to the client.
var requiredFields = []string{"name", "age", "gender", "bloodGroup", "dateOfBirth"}

// Submission is a validated profile submission. Optional fields are nil when
// the form did not carry them at all; a present-but-empty field arrives as a
// pointer to the empty string, so "not provided" is never conflated with
// "provided empty".
type Submission struct {
	Name              string
	Age               string
	Gender            string
	BloodGroup        string
	DateOfBirth       string
	MedicalConditions *string
	HealthInsurance   *string
}

// ValidationError reports the required fields a submission is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ParseSubmission validates raw multipart form values and returns the field
// set a write may proceed with. It is a pure function: no store is touched
// here, and a failed validation therefore guarantees zero writes.
//
// The name must be non-empty after trimming and is used verbatim as the
// store key, with no case folding or other normalization.
func ParseSubmission(values url.Values) (*Submission, error) {
	var missing []string
	for _, field := range requiredFields {
		v := values.Get(field)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	sub := &Submission{
		Name:        strings.TrimSpace(values.Get("name")),
		Age:         values.Get("age"),
		Gender:      values.Get("gender"),
		BloodGroup:  values.Get("bloodGroup"),
		DateOfBirth: values.Get("dateOfBirth"),
	}
	if v, ok := formValue(values, "medicalConditions"); ok {
		sub.MedicalConditions = &v
	}
	if v, ok := formValue(values, "healthInsurance"); ok {
		sub.HealthInsurance = &v
	}
	return sub, nil
}

// formValue distinguishes an absent field from a present empty one.
func formValue(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
