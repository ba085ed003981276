package secrets

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	got, ok, err := TokenExpiry(signed(t, jwt.RegisteredClaims{Subject: "admin", ExpiresAt: jwt.NewNumericDate(exp)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v (ok=%v)", exp, got, ok)
	}

	_, ok, err = TokenExpiry(signed(t, jwt.RegisteredClaims{Subject: "admin"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no expiry")
	}

	if _, _, err := TokenExpiry("opaque-token"); err == nil {
		t.Fatalf("expected error for a non-jwt token")
	}
}
