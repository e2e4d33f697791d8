package middleware

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
)

// DefaultAllowedOrigins is used when no origin is configured
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// CORS wraps a handler with the read-only API's CORS policy
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}

	return gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(origins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Accept", "Content-Type", RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{RequestIDHeader}),
		gorillaHandlers.MaxAge(43200),
	)
}
