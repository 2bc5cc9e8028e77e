package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
)

// StatusError is the raw non-2xx answer from the backend. It is always wrapped in a
// pkg/errors value whose code reflects the status.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Fields  map[string]string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *StatusError) UpstreamStatus() int  { return e.Status }
func (e *StatusError) UpstreamPath() string { return e.Path }

// backendErrorBody covers the error shapes the backend emits: Spring's default
// error attributes plus the field map from bean validation failures.
type backendErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func parseErrorBody(status int, body []byte) (string, map[string]string) {
	var parsed backendErrorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		switch {
		case strings.TrimSpace(parsed.Message) != "":
			return parsed.Message, parsed.Errors
		case strings.TrimSpace(parsed.Error) != "":
			return parsed.Error, parsed.Errors
		case len(parsed.Errors) > 0:
			return "validation failed", parsed.Errors
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 200 {
		return text, nil
	}
	return http.StatusText(status), nil
}

// codeForStatus maps a backend status onto the storefront error taxonomy.
func codeForStatus(status int) pkgerrors.Code {
	switch {
	case status == http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case status == http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case status == http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case status == http.StatusConflict:
		return pkgerrors.CodeConflict
	case status == http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	case status >= 500:
		return pkgerrors.CodeDependency
	default:
		return pkgerrors.CodeDependency
	}
}

func newStatusError(method, path string, status int, body []byte) error {
	message, fields := parseErrorBody(status, body)
	statusErr := &StatusError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: message,
		Fields:  fields,
	}
	typed := pkgerrors.Wrap(codeForStatus(status), statusErr, message)
	if len(fields) > 0 {
		typed = typed.WithDetails(fields)
	}
	return typed
}
