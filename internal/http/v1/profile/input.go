package profile

import (
	"github.com/danielgtaylor/huma/v2"
)

// SubmissionForm documents the multipart fields of POST /profile. Required
// fields are enforced by the ingestion validator rather than schema tags so
// that a single response can name every missing field at once.
type SubmissionForm struct {
	Name              string        `form:"name"              doc:"Unique profile name (case-sensitive)"`
	Age               string        `form:"age"               doc:"Age"`
	Gender            string        `form:"gender"            doc:"Gender"`
	BloodGroup        string        `form:"bloodGroup"        doc:"Blood group"`
	DateOfBirth       string        `form:"dateOfBirth"       doc:"Date of birth"`
	MedicalConditions string        `form:"medicalConditions" doc:"Known medical conditions (optional)"`
	HealthInsurance   string        `form:"healthInsurance"   doc:"Health insurance details (optional)"`
	Photo             huma.FormFile `form:"photo"             doc:"Profile photo, png or jpeg, at most 5 MiB (optional)"`
}

// SaveInput for POST /profile (multipart form).
type SaveInput struct {
	RawBody huma.MultipartFormFiles[SubmissionForm]
}

// GetInput for GET /profile/name/{name}.
type GetInput struct {
	Name string `path:"name" doc:"Exact profile name" example:"Alice"`
}

// ListInput for GET /profiles.
type ListInput struct{}

// DeleteInput for DELETE /profile/name/{name}.
type DeleteInput struct {
	Name string `path:"name" doc:"Exact profile name" example:"Alice"`
}

// ShareInput for GET /profile/name/{name}/share.
type ShareInput struct {
	Name string `path:"name" doc:"Exact profile name" example:"Alice"`
}
