package session

import (
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
)

// User is the identity stored alongside the backend token.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      enums.Role `json:"role"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsAdmin() bool {
	return u.Role == enums.RoleAdmin
}

// Credentials is what a browser session holds while authenticated.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

// State is the auth state of one browser session. A nil Credentials means unauthenticated.
type State struct {
	SessionID   string
	Credentials *Credentials
}

func (s State) Authenticated() bool {
	return s.Credentials != nil && s.Credentials.Token != ""
}

func (s State) Token() string {
	if !s.Authenticated() {
		return ""
	}
	return s.Credentials.Token
}

// User returns the signed in user, or nil.
func (s State) User() *User {
	if !s.Authenticated() {
		return nil
	}
	u := s.Credentials.User
	return &u
}

func (s State) Role() enums.Role {
	if !s.Authenticated() {
		return ""
	}
	return s.Credentials.User.Role
}

func credentialsFrom(resp auth.AuthResponse) *Credentials {
	return &Credentials{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		User: User{
			ID:        resp.UserID,
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
			Role:      resp.ParsedRole(),
		},
	}
}
