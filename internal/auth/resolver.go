package auth

import (
	"net/http"
	"strings"

	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/models"
)

// CookieName is the cookie carrying the auth token for browser navigation.
const CookieName = "token"

// UserFinder is the slice of the user store the resolver needs.
type UserFinder interface {
	GetUserByID(id string) (models.User, error)
}

// TokenExtractor pulls a raw token out of an inbound request. An empty
// string means the request carried none.
type TokenExtractor func(r *http.Request) string

// FromHeader extracts a token from the Authorization: Bearer header.
func FromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// FromCookie extracts a token from the auth cookie.
func FromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// FromRequest tries the Authorization header first, then falls back to the
// cookie, so API clients and browser navigation share one trust path.
func FromRequest(r *http.Request) string {
	if token := FromHeader(r); token != "" {
		return token
	}
	return FromCookie(r)
}

// Resolver is the sole authorization primitive: it turns a raw token into
// the user it belongs to. Every protected handler goes through it before
// touching owned resources.
type Resolver struct {
	tokens *TokenService
	users  UserFinder
}

// NewResolver creates a Resolver on top of a token service and user store.
func NewResolver(tokens *TokenService, users UserFinder) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve verifies a token and loads the user it embeds. A verified token
// whose user no longer exists fails too; deleting an account revokes every
// token issued for it.
func (rs *Resolver) Resolve(token string) (models.User, error) {
	if token == "" {
		return models.User{}, errs.ErrUnauthenticated
	}

	userID, err := rs.tokens.Verify(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := rs.users.GetUserByID(userID)
	if err != nil {
		return models.User{}, errs.ErrUserNotFound
	}
	return user, nil
}

// ResolveRequest extracts a token with the given strategy and resolves it.
func (rs *Resolver) ResolveRequest(r *http.Request, extract TokenExtractor) (models.User, error) {
	return rs.Resolve(extract(r))
}
