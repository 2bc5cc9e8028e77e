package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(config.BackendConfig{URL: srv.URL})
	require.NoError(t, err)
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc
}

func TestLoginNormalizesEmail(t *testing.T) {
	var got LoginRequest
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "t", UserID: 4, Role: "ADMIN"})
	})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "  Admin@Mahalaxmi.IN ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "admin@mahalaxmi.in", got.Email)
	assert.Equal(t, enums.RoleAdmin, resp.ParsedRole())
}

func TestLoginPropagatesUnauthorized(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.in", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestRegisterPostsForm(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "t", Role: "CUSTOMER"})
	})
	resp, err := svc.Register(context.Background(), RegisterRequest{FirstName: " Asha ", LastName: "K", Email: "a@b.in", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleCustomer, resp.ParsedRole())
}

func TestUpdateProfileUsesToken(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(User{ID: 1, FirstName: "Asha"})
	})
	user, err := svc.UpdateProfile(apiclient.WithToken(context.Background(), "tok"), ProfileUpdate{FirstName: "Asha", LastName: "K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.FirstName)
}

func TestParsedRoleDefaultsToCustomer(t *testing.T) {
	assert.Equal(t, enums.RoleCustomer, AuthResponse{Role: "weird"}.ParsedRole())
}
