package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormHelpers(t *testing.T) {
	r := postForm(url.Values{
		"name":     {"  RTX 4090  "},
		"qty":      {"3"},
		"bad":      {"three"},
		"category": {"12"},
		"negative": {"-4"},
		"active":   {"on"},
	})

	assert.Equal(t, "RTX 4090", FormString(r, "name"))
	assert.Equal(t, 3, FormInt(r, "qty", 1))
	assert.Equal(t, 1, FormInt(r, "bad", 1))
	assert.Equal(t, 1, FormInt(r, "missing", 1))
	assert.Equal(t, int64(12), FormInt64(r, "category"))
	assert.Equal(t, int64(0), FormInt64(r, "negative"))
	assert.True(t, FormBool(r, "active"))
	assert.False(t, FormBool(r, "featured"))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	type login struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	err := Validate(login{Email: "nope"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	fields := FieldErrors(err)
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "is required", fields["password"])
}

func TestPathID(t *testing.T) {
	withParam := func(v string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := PathID(withParam("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathID(withParam("abc"), "id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = PathID(withParam("0"), "id")
	assert.Error(t, err)
}

func TestQueryPageAndInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&size=500", nil)
	assert.Equal(t, 3, QueryPage(r))
	_, err := ParseQueryInt(r, "size", 10, 1, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	assert.Equal(t, 0, QueryPage(httptest.NewRequest(http.MethodGet, "/?page=-2", nil)))
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	city := "मुंबई"
	got := SanitizeString("  "+city+"  ", 7)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "मु", got)

	assert.Equal(t, city, SanitizeString(city, len(city)))
	assert.Equal(t, "Pune", SanitizeString(" Pune ", 0))
	assert.Equal(t, "Pu", SanitizeString("Pune", 2))
}
