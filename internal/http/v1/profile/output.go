package profile

// SaveOutput for POST /profile.
type SaveOutput struct {
	Body SaveBody
}

// SaveBody wraps the saved record in the success envelope.
type SaveBody struct {
	Success bool    `json:"success" example:"true"`
	Message string  `json:"message" example:"Profile saved successfully!"`
	Record  Profile `json:"record"`
}

// GetOutput for GET /profile/name/{name}.
type GetOutput struct {
	Body GetBody
}

// GetBody wraps a fetched record.
type GetBody struct {
	Success bool    `json:"success" example:"true"`
	Record  Profile `json:"record"`
}

// ListOutput for GET /profiles.
type ListOutput struct {
	Body ListBody
}

// ListBody wraps the full, possibly empty, listing.
type ListBody struct {
	Success bool      `json:"success" example:"true"`
	Records []Profile `json:"records"`
}

// DeleteOutput for DELETE /profile/name/{name}.
type DeleteOutput struct {
	Body DeleteBody
}

// DeleteBody confirms a deletion.
type DeleteBody struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Profile deleted successfully!"`
}

// ShareOutput for GET /profile/name/{name}/share.
type ShareOutput struct {
	Body ShareBody
}

// ShareBody carries the plain-text share payload.
type ShareBody struct {
	Success bool   `json:"success" example:"true"`
	Text    string `json:"text" doc:"Plain-text profile summary for SMS or Bluetooth transfer"`
}
