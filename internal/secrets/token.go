package secrets

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a bearer token without verifying its
// signature. ok is false when the token carries no expiry.
func TokenExpiry(token string) (expiresAt time.Time, ok bool, err error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("parsing token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}

	return claims.ExpiresAt.Time, true, nil
}
