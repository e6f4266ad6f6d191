package auth

import (
	"context"
	"net/http"

	"github.com/reyhanturkkal/Task-Management/internal/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

// userContextKey is the context key for the resolved user.
const userContextKey = contextKey("authUser")

// UserFromContext returns the user placed in the context by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// Middleware protects API routes. It resolves the inbound token (header
// first, cookie fallback) and passes the user down via the request context.
// All resolver failures produce the same 401; callers never learn whether
// the token was missing, invalid, or orphaned.
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.ResolveRequest(r, FromRequest)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
