package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/aushadx/profile-directory/internal/http/v1/profile"
	"github.com/aushadx/profile-directory/internal/http/v1/scan"
	"github.com/aushadx/profile-directory/internal/service/directory"
	"github.com/aushadx/profile-directory/internal/service/recognition"
)

// Register wires all HTTP routes into the provided API.
func Register(api huma.API, directoryService directory.Service, recognitionService recognition.Service) {
	profile.Register(api, directoryService)
	scan.Register(api, recognitionService)
}
