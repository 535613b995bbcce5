package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration resolved from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// ProjectID selects the Firestore project backing the document store.
	// When empty the server falls back to the in-memory store (local
	// development only; state is lost on restart).
	ProjectID string
	// CredentialsFile optionally points at a service account JSON file.
	CredentialsFile string
	// UploadDir is the directory holding photo assets.
	UploadDir string
	// RecognizerURL is the base URL of the external medicine recognizer.
	// When empty the /scan endpoint reports the recognizer as unavailable.
	RecognizerURL string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		ProjectID:       firstNonEmpty(os.Getenv("FIRESTORE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		RecognizerURL:   os.Getenv("RECOGNIZER_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
