package middleware

import (
	"os"
	"strings"
)

// AllowedOrigins lists the browser origins allowed to call the API and
// open the notifications websocket: the local garden frontend dev
// servers, the deployed frontend (CLIENT_URL), and any extras from the
// comma-separated ALLOWED_ORIGINS.
func AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
