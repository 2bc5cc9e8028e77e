package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/validation"
)

const maxFieldLen = 2000

// FormString returns a trimmed form value.
func FormString(r *http.Request, key string) string {
	return SanitizeString(r.PostFormValue(key), maxFieldLen)
}

// FormText returns a multi-line form value trimmed at the edges only.
func FormText(r *http.Request, key string) string {
	return SanitizeString(strings.ReplaceAll(r.PostFormValue(key), "\r\n", "\n"), 4*maxFieldLen)
}

// FormInt parses an integer field, returning fallback when the field is blank or malformed.
func FormInt(r *http.Request, key string, fallback int) int {
	raw := FormString(r, key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// FormInt64 parses an id field. Blank, malformed or non-positive input yields 0.
func FormInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(FormString(r, key), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormBool reads a checkbox.
func FormBool(r *http.Request, key string) bool {
	switch strings.ToLower(FormString(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Validate checks dest against its validate tags and returns field errors keyed by json name.
func Validate(dest any) error {
	return validation.Struct(dest)
}

// FieldErrors extracts the per-field messages from a validation error.
func FieldErrors(err error) map[string]string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.FieldErrors()
	}
	return nil
}

// Invalid builds a validation error carrying field messages.
func Invalid(fields map[string]string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fields)
}
