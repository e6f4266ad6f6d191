package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// EdgeGate guards browser page routes. It reads the token from the cookie
// only (navigation never carries an Authorization header), resolves it
// in-process, and redirects to the sign-in page on any failure. Ambiguous
// failures never let a request through.
func EdgeGate(resolver *Resolver, signinPath string, protectedPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !matchesPrefix(r.URL.Path, protectedPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := resolver.ResolveRequest(r, FromCookie); err != nil {
				log.Info().Str("path", r.URL.Path).Msg("Edge gate redirecting to sign-in")
				http.Redirect(w, r, signinPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
