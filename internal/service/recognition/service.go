package recognition

import (
	"context"
	"errors"
	"fmt"
)

// Service errors
var (
	ErrUnrecognized = errors.New("recognizer could not extract medicine details")
	ErrUnavailable  = errors.New("recognizer not configured")
	ErrUpstream     = errors.New("recognizer upstream error")
)

// UpstreamError carries recognizer response metadata for error mapping.
type UpstreamError struct {
	Status int
	cause  error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "recognizer upstream error"
	}
	if e.cause == nil {
		return fmt.Sprintf("recognizer upstream error (status=%d)", e.Status)
	}
	return fmt.Sprintf("recognizer upstream error (status=%d): %v", e.Status, e.cause)
}

// Unwrap enables errors.Is against sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Result is the recognizer's output: the raw structured text it extracted
// from the packaging image.
type Result struct {
	RawResponse string
}

// Service consumes the external medicine recognizer as an opaque call:
// image in, structured text out. The recognizer's internals are not this
// repository's concern.
type Service interface {
	Recognize(ctx context.Context, image []byte, language string) (*Result, error)
}
