// Package middleware holds HTTP middleware shared by the API surface.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/reachforge/reachforge/internal/domain/user"
)

type authUserCtxKey struct{}

// SessionValidator resolves a bearer token to its user. Expired or
// unknown tokens return an error.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*user.User, error)
}

// publicPaths are exempt from authentication. The TC3D catalogs are
// global read-only reference data.
var publicPaths = map[string]bool{
	"/health":               true,
	"/api/v1/auth/login":    true,
	"/api/v1/auth/register": true,
	"/api/v1/tc3d/tools":    true,
	"/api/v1/tc3d/tiers":    true,
	"/api/v1/tc3d/tasks":    true,
}

// Auth returns middleware that validates session bearer tokens and
// injects the authenticated user into the request context. The /ws
// route does its own token handling inside the hub handshake.
func Auth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.URL.Path == "/ws" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				http.Error(w, `{"error":"invalid authorization header"}`, http.StatusUnauthorized)
				return
			}

			u, err := sessions.ValidateSession(r.Context(), token)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired session"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authUserCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil when the
// request went through a public path.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(authUserCtxKey{}).(*user.User)
	return u
}

// WithUser injects a user into the context. Test helper for handler tests.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, authUserCtxKey{}, u)
}
