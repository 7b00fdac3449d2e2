// Package middleware provides reusable HTTP middleware for the Tourvisto API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for the
// dashboard front end. Each entry in allowedOrigins must be a full origin
// (scheme + host, no trailing slash). The API is read-mostly, so only GET,
// POST and preflight OPTIONS are allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})
	return c.Handler
}
