package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct{}

func (fakeUpstream) Error() string        { return "backend said no" }
func (fakeUpstream) UpstreamStatus() int  { return http.StatusBadGateway }
func (fakeUpstream) UpstreamPath() string { return "/cart" }

func TestOutcomeFollowsTaxonomy(t *testing.T) {
	assert.Equal(t, OutcomeForceLogout, MetadataFor(CodeUnauthorized).Outcome)
	assert.Equal(t, OutcomeRedirectHome, MetadataFor(CodeForbidden).Outcome)
	assert.Equal(t, OutcomeInline, MetadataFor(CodeValidation).Outcome)
	assert.Equal(t, OutcomeNotice, MetadataFor(CodeDependency).Outcome)
	assert.Equal(t, OutcomeNotice, MetadataFor(Code("bogus")).Outcome)
}

func TestAsFindsWrappedError(t *testing.T) {
	base := New(CodeNotFound, "product missing")
	wrapped := fmt.Errorf("loading detail: %w", base)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeConflict))
}

func TestFieldErrors(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"email": "is required"})
	assert.Equal(t, "is required", err.FieldErrors()["email"])
	assert.Nil(t, New(CodeValidation, "x").FieldErrors())
}

func TestDumpCollectsUpstreamFields(t *testing.T) {
	err := Wrap(CodeDependency, fakeUpstream{}, "fetch cart")
	d := Dump(err)

	assert.Equal(t, CodeDependency, d.Code)
	assert.Equal(t, http.StatusBadGateway, d.UpstreamStatus)
	assert.Equal(t, "/cart", d.UpstreamPath)
	assert.Len(t, d.Chain, 2)
}
