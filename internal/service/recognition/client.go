package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

const userAgent = "profile-directory"

// Client implements Service against the recognizer's HTTP API. The wire
// contract is a single POST /scan accepting a base64 image plus the user's
// language, returning either the raw recognized text or an error string.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the recognizer base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a recognizer client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scanRequest struct {
	Image    string `json:"image"`
	Language string `json:"language,omitempty"`
}

type scanResponse struct {
	RawResponse string `json:"raw_response"`
	Error       string `json:"error"`
}

// Recognize submits the image and returns the extracted text.
func (c *Client) Recognize(ctx context.Context, image []byte, language string) (*Result, error) {
	if c.baseURL == "" {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(scanRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scan", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling recognizer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, cause: ErrUpstream}
	}

	var sr scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding recognizer response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, sr.Error)
	}

	return &Result{RawResponse: sr.RawResponse}, nil
}

// Compile-time interface check
var _ Service = (*Client)(nil)
