package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InspectToken decodes the backend token without verifying its signature.
func InspectToken(tokenString string) (*BackendClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("token is required")
	}
	claims := &BackendClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decoding backend token: %w", err)
	}
	return claims, nil
}

// SessionTTL bounds how long stored credentials live: until the token's exp when it has one,
// never longer than ceiling. Opaque or exp-less tokens get the ceiling. An already expired
// token yields zero.
func SessionTTL(tokenString string, now time.Time, ceiling time.Duration) time.Duration {
	claims, err := InspectToken(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return ceiling
	}
	remaining := claims.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	if ceiling > 0 && remaining > ceiling {
		return ceiling
	}
	return remaining
}
