package profile

import (
	"github.com/aushadx/profile-directory/internal/platform/timeutil"
	"github.com/aushadx/profile-directory/internal/service/document"
)

// Profile represents a profile record on the wire. Optional free-text fields
// are omitted entirely when never provided; photoPath is always present and
// null until a photo has been uploaded.
type Profile struct {
	Name              string        `json:"name"        doc:"Unique profile name (case-sensitive)" example:"Alice"`
	Age               string        `json:"age"         doc:"Age"           example:"30"`
	Gender            string        `json:"gender"      doc:"Gender"        example:"F"`
	BloodGroup        string        `json:"bloodGroup"  doc:"Blood group"   example:"O+"`
	DateOfBirth       string        `json:"dateOfBirth" doc:"Date of birth" example:"1994-01-01"`
	MedicalConditions *string       `json:"medicalConditions,omitempty" doc:"Known medical conditions"`
	HealthInsurance   *string       `json:"healthInsurance,omitempty"   doc:"Health insurance details"`
	PhotoPath         *string       `json:"photoPath"   doc:"Public path of the stored photo, null when none" example:"/uploads/photo-1700000000000-ab12cd34ef56.png"`
	CreatedAt         timeutil.Time `json:"createdAt"   doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt         timeutil.Time `json:"updatedAt"   doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z"`
}

func toHTTPProfile(rec *document.Record) Profile {
	return Profile{
		Name:              rec.Name,
		Age:               rec.Age,
		Gender:            rec.Gender,
		BloodGroup:        rec.BloodGroup,
		DateOfBirth:       rec.DateOfBirth,
		MedicalConditions: rec.MedicalConditions,
		HealthInsurance:   rec.HealthInsurance,
		PhotoPath:         rec.PhotoPath,
		CreatedAt:         timeutil.Time{Time: rec.CreatedAt},
		UpdatedAt:         timeutil.Time{Time: rec.UpdatedAt},
	}
}
