package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/models"
)

// fakeUserStore keeps users in a map; deleting from the map simulates
// account deletion.
type fakeUserStore struct {
	users map[string]models.User
}

func (f *fakeUserStore) GetUserByID(id string) (models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return models.User{}, errs.ErrUserNotFound
}

func newTestResolver(t *testing.T) (*Resolver, *TokenService, *fakeUserStore) {
	t.Helper()
	tokens := newTestTokenService(t, time.Hour)
	store := &fakeUserStore{users: map[string]models.User{
		"user-1": {ID: "user-1", Username: "alice", Email: "a@x.com"},
	}}
	return NewResolver(tokens, store), tokens, store
}

func TestResolveValidToken(t *testing.T) {
	resolver, tokens, _ := newTestResolver(t)

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	user, err := resolver.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.ID != "user-1" || user.Username != "alice" {
		t.Errorf("Resolve returned %+v, want user-1/alice", user)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	if _, err := resolver.Resolve(""); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Errorf("Resolve(\"\") = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveDeletedUser(t *testing.T) {
	resolver, tokens, store := newTestResolver(t)

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := resolver.Resolve(token); err != nil {
		t.Fatalf("Resolve before deletion: %v", err)
	}

	// Deleting the account must revoke the still-valid token.
	delete(store.users, "user-1")

	if _, err := resolver.Resolve(token); !errors.Is(err, errs.ErrUserNotFound) {
		t.Errorf("Resolve after deletion = %v, want ErrUserNotFound", err)
	}
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := FromHeader(r); got != tt.want {
			t.Errorf("FromHeader(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestFromRequestPrefersHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

	if got := FromRequest(r); got != "header-token" {
		t.Errorf("FromRequest = %q, want header-token", got)
	}
}

func TestFromRequestFallsBackToCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

	if got := FromRequest(r); got != "cookie-token" {
		t.Errorf("FromRequest = %q, want cookie-token", got)
	}
}
