package scan

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aushadx/profile-directory/internal/service/asset"
	"github.com/aushadx/profile-directory/internal/service/recognition"
)

// ScanForm is the multipart payload of POST /scan.
type ScanForm struct {
	Image    huma.FormFile `form:"image"    doc:"Medicine packaging photo, png or jpeg, at most 5 MiB"`
	Language string        `form:"language" doc:"Preferred language for the recognized text (optional)"`
}

// ScanInput for POST /scan.
type ScanInput struct {
	RawBody huma.MultipartFormFiles[ScanForm]
}

// ScanOutput for POST /scan.
type ScanOutput struct {
	Body ScanBody
}

// ScanBody carries the recognizer's raw extracted text.
type ScanBody struct {
	Success     bool   `json:"success" example:"true"`
	RawResponse string `json:"rawResponse" doc:"Structured text extracted from the packaging image"`
}

// Register registers the recognition proxy endpoint.
func Register(api huma.API, svc recognition.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "scan-medicine",
		Method:      http.MethodPost,
		Path:        "/scan",
		Summary:     "Recognize medicine details from a packaging photo",
		Description: "Forwards the image to the external recognition service and returns its raw extracted text.",
		Tags:        []string{"Recognition"},
	}, func(ctx context.Context, input *ScanInput) (*ScanOutput, error) {
		form := input.RawBody.Data()
		if !form.Image.IsSet {
			return nil, huma.Error400BadRequest("No image provided")
		}
		if !asset.AllowedType(form.Image.ContentType) {
			return nil, huma.Error415UnsupportedMediaType("Only .png, .jpg and .jpeg format allowed!")
		}

		image, err := io.ReadAll(io.LimitReader(form.Image, asset.MaxUploadBytes+1))
		if err != nil {
			return nil, huma.Error400BadRequest("could not read image", err)
		}
		if len(image) > asset.MaxUploadBytes {
			return nil, huma.NewError(http.StatusRequestEntityTooLarge, "Image exceeds the 5 MiB size limit")
		}

		language := ""
		if vs := input.RawBody.Form.Value["language"]; len(vs) > 0 {
			language = vs[0]
		}

		result, err := svc.Recognize(ctx, image, language)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ScanOutput{
			Body: ScanBody{
				Success:     true,
				RawResponse: result.RawResponse,
			},
		}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, recognition.ErrUnavailable):
		return huma.Error503ServiceUnavailable("Recognition service is not configured")
	case errors.Is(err, recognition.ErrUnrecognized):
		return huma.Error422UnprocessableEntity("Failed to extract medicine details.")
	case errors.Is(err, recognition.ErrUpstream):
		return huma.Error502BadGateway("Recognition service failed")
	default:
		return huma.Error502BadGateway("Recognition service failed")
	}
}
