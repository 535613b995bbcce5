package recognition

import "context"

// MockService implements Service for unit tests.
type MockService struct {
	Result *Result
	Err    error

	// LastImage and LastLanguage capture the most recent call.
	LastImage    []byte
	LastLanguage string
}

func (m *MockService) Recognize(_ context.Context, image []byte, language string) (*Result, error) {
	m.LastImage = image
	m.LastLanguage = language
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
