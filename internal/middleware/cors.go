// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"strings"
)

// corsAllowedMethods and corsAllowedHeaders cover the full API surface.
var (
	corsAllowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsAllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing
// for the configured origins. An entry of "*" allows any origin; origins
// are matched case-insensitively.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	methodsStr := strings.Join(corsAllowedMethods, ", ")
	headersStr := strings.Join(corsAllowedHeaders, ", ")

	allowAll := false
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		originSet[strings.ToLower(origin)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowAll && !originSet[strings.ToLower(origin)] {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// Proceed without CORS headers; the browser blocks the response.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methodsStr)
				w.Header().Set("Access-Control-Allow-Headers", headersStr)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
