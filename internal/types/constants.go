package types

import "strings"

// ContextEmailKey is the gin context key under which the session
// middleware stores the verified email.
const ContextEmailKey = "decoded_email"

// SessionCookieName carries the signed session token.
const SessionCookieName = "token"

// Default allowed origins for development and the hosted frontend
var defaultOrigins = []string{
	"http://localhost:5173",
	"https://gadgetswap-101.web.app",
}

// AllowedOrigins returns the CORS origin list: the defaults plus
// CLIENT_URL and any comma-separated ALLOWED_ORIGINS entries.
func AllowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(extra, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
