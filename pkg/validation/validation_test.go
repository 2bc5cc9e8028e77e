package validation

import (
	"testing"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirmPassword" validate:"eqfield=Password"`
	Phone    string `validate:"omitempty,min=10"`
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(&signup{Email: "nope", Password: "abc", Confirm: "abd", Phone: "123"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	fields := typed.FieldErrors()
	assert.Equal(t, "must be a valid email", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
	assert.Equal(t, "does not match", fields["confirmPassword"])
	assert.Equal(t, "must be at least 10 characters", fields["Phone"])
}

func TestStructPassesValidInput(t *testing.T) {
	assert.NoError(t, Struct(&signup{Email: "a@b.in", Password: "secret", Confirm: "secret"}))
}
