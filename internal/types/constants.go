package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins feeds the CORS config. Local dev frontends are always
// allowed; CLIENT_URL adds the deployed frontend and ALLOWED_ORIGINS takes a
// comma-separated list for anything else.
var AllowedOrigins = initAllowedOrigins()

func initAllowedOrigins() []string {
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
