package profile

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aushadx/profile-directory/internal/service/asset"
	"github.com/aushadx/profile-directory/internal/service/directory"
	"github.com/aushadx/profile-directory/internal/service/document"
)

// Register registers the profile directory endpoints.
func Register(api huma.API, svc directory.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "save-profile",
		Method:      http.MethodPost,
		Path:        "/profile",
		Summary:     "Create or update a profile",
		Description: "Creates the profile on first submission for a name and updates it in place afterwards. " +
			"An attached photo replaces any previous one; a submission without a photo preserves it.",
		Tags: []string{"Profile"},
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		sub, err := directory.ParseSubmission(url.Values(input.RawBody.Form.Value))
		if err != nil {
			return nil, validationError(err)
		}

		var upload *asset.Upload
		if photo := input.RawBody.Data().Photo; photo.IsSet {
			upload = &asset.Upload{
				Content:     photo,
				ContentType: photo.ContentType,
			}
		}

		rec, err := svc.Save(ctx, *sub, upload)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &SaveOutput{
			Body: SaveBody{
				Success: true,
				Message: "Profile saved successfully!",
				Record:  toHTTPProfile(rec),
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile/name/{name}",
		Summary:     "Fetch a profile by name",
		Description: "Exact-match lookup; there is no partial or fuzzy search.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		rec, err := svc.Get(ctx, input.Name)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &GetOutput{
			Body: GetBody{
				Success: true,
				Record:  toHTTPProfile(rec),
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profiles",
		Summary:     "List all profiles",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *ListInput) (*ListOutput, error) {
		recs, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		records := make([]Profile, len(recs))
		for i := range recs {
			records[i] = toHTTPProfile(&recs[i])
		}
		return &ListOutput{
			Body: ListBody{
				Success: true,
				Records: records,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-profile",
		Method:      http.MethodDelete,
		Path:        "/profile/name/{name}",
		Summary:     "Delete a profile by name",
		Description: "Removes the record and reclaims its stored photo. Deleting an absent name is an error.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
		if err := svc.Delete(ctx, input.Name); err != nil {
			return nil, mapServiceError(err)
		}
		return &DeleteOutput{
			Body: DeleteBody{
				Success: true,
				Message: "Profile deleted successfully!",
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "share-profile",
		Method:      http.MethodGet,
		Path:        "/profile/name/{name}/share",
		Summary:     "Render a profile as a shareable text summary",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *ShareInput) (*ShareOutput, error) {
		rec, err := svc.Get(ctx, input.Name)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ShareOutput{
			Body: ShareBody{
				Success: true,
				Text:    directory.ShareText(rec),
			},
		}, nil
	})
}

// validationError converts a failed validation into a 400 naming every
// missing field at once.
func validationError(err error) error {
	var verr *directory.ValidationError
	if !errors.As(err, &verr) {
		return huma.Error400BadRequest("invalid submission", err)
	}
	details := make([]error, len(verr.Missing))
	for i, field := range verr.Missing {
		details[i] = &huma.ErrorDetail{Location: field, Message: "required field is missing"}
	}
	return huma.Error400BadRequest("Missing required fields!", details...)
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return huma.Error404NotFound("User not found")
	case errors.Is(err, document.ErrAlreadyExists):
		return huma.Error409Conflict("Profile name already exists!")
	case errors.Is(err, asset.ErrUnsupportedMediaType):
		return huma.Error415UnsupportedMediaType("Only .png, .jpg and .jpeg format allowed!")
	case errors.Is(err, asset.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, "Photo exceeds the 5 MiB size limit")
	default:
		return huma.Error500InternalServerError("Internal Server Error")
	}
}
