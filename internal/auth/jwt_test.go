package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reyhanturkkal/Task-Management/internal/errs"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret", ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned an empty token")
	}

	userID, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Verify returned %q, want %q", userID, "user-123")
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ts.Verify(tampered); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Errorf("Verify(tampered) = %v, want ErrUnauthenticated", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)
	verifier, err := NewTokenService("a-different-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Errorf("Verify with wrong secret = %v, want ErrUnauthenticated", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := newTestTokenService(t, -time.Minute)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := ts.Verify(token); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Errorf("Verify(expired) = %v, want ErrUnauthenticated", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	ts := newTestTokenService(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := ts.Verify(token); !errors.Is(err, errs.ErrUnauthenticated) {
			t.Errorf("Verify(%q) = %v, want ErrUnauthenticated", token, err)
		}
	}
}

func TestEmptySecretRejected(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Error("NewTokenService accepted an empty secret")
	}
}
