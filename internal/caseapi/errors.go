package caseapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound means the case (or sub-resource) does not exist upstream.
	ErrNotFound = errors.New("caseapi: not found")

	// ErrUnauthorized means the bearer token was rejected. The cached token
	// is invalidated before this is returned, so the next call
	// re-authenticates.
	ErrUnauthorized = errors.New("caseapi: unauthorized")

	// ErrInvalidCredentials means a caseworker login check failed.
	ErrInvalidCredentials = errors.New("caseapi: invalid username or password")
)

// APIError is a non-2xx response from the Civil Case API with whatever
// detail the upstream body carried.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("caseapi: upstream %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("caseapi: upstream %d", e.StatusCode)
}

// IsClientError reports whether the upstream rejected the request itself
// (4xx), as opposed to failing internally.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// newAPIError extracts a message from an upstream error body. Upstream error
// shapes vary between endpoints ({"detail": ...}, {"error": ...},
// {"errors": {field: [msg]}}), so extraction is tolerant rather than typed.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	if len(body) == 0 || !gjson.ValidBytes(body) {
		return apiErr
	}

	apiErr.Code = gjson.GetBytes(body, "code").String()

	for _, path := range []string{"detail", "error", "message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			apiErr.Message = v.String()
			return apiErr
		}
	}

	// Field-keyed validation errors: flatten to "field: first message".
	if errs := gjson.GetBytes(body, "errors"); errs.IsObject() {
		var parts []string
		errs.ForEach(func(key, value gjson.Result) bool {
			msg := value.String()
			if value.IsArray() && len(value.Array()) > 0 {
				msg = value.Array()[0].String()
			}
			parts = append(parts, key.String()+": "+msg)
			return true
		})
		apiErr.Message = strings.Join(parts, "; ")
	}

	return apiErr
}

// AsAPIError unwraps err to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
