package api

// Envelope is the response shape shared by every error the API emits and
// embedded in every success payload: a success flag plus a human-readable
// message. Field-level detail rides along for validation failures.
type Envelope struct {
	Success bool         `json:"success" doc:"False for every error response" example:"false"`
	Message string       `json:"message" doc:"Human-readable outcome" example:"Missing required fields!"`
	Details []FieldIssue `json:"details,omitempty" doc:"Field-level problems, when applicable"`
}

// FieldIssue gives field-level or contextual error information.
type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

// NewErrorEnvelope constructs an error envelope.
func NewErrorEnvelope(msg string, details []FieldIssue) Envelope {
	var cloned []FieldIssue
	if len(details) > 0 {
		cloned = make([]FieldIssue, len(details))
		copy(cloned, details)
	}
	return Envelope{
		Success: false,
		Message: msg,
		Details: cloned,
	}
}
