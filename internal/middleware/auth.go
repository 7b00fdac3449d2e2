package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/tourvisto/backend/internal/auth"
)

type claimsKey struct{}

// NewAuthHandler returns a middleware that requires a valid bearer token
// signed with secret. When role is non-empty the token's role claim must
// match it. Missing or invalid tokens get 401; a valid token with the wrong
// role gets 403. Accepted claims are stored on the request context.
func NewAuthHandler(secret []byte, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := auth.Parse(secret, strings.TrimSpace(token), time.Now)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}
			if role != "" && claims.Role != role {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by NewAuthHandler, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}
