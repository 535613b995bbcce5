package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint. Store names the document
// store backing the process so a probe can tell a real deployment from the
// in-memory development fallback.
type Response struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Handler returns the health check handler for a process backed by the
// named document store.
func Handler(store string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Status: "healthy", Store: store})
	}
}
