package auth

import "github.com/golang-jwt/jwt/v5"

// BackendClaims is the subset of the commerce backend's access token the storefront reads.
// The backend signs with a key the storefront never sees, so these claims are informational.
type BackendClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
