package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
)

// Service wraps the backend auth and profile endpoints.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error)
}

type service struct {
	api apiclient.API
}

// NewService constructs the auth service.
func NewService(api apiclient.API) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend api client is required")
	}
	return &service{api: api}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	var out AuthResponse
	if err := s.api.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	var out AuthResponse
	if err := s.api.Post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves the profile tab. The call is authenticated by the token on ctx.
func (s *service) UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error) {
	var out User
	if err := s.api.Put(ctx, "/users/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
