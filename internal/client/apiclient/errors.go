package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSessionExpired = errors.New("session expired")
	ErrRefreshTimeout = errors.New("token refresh timed out")
	ErrEmptyAccess    = errors.New("refresh response has no access token")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if d := e.Detail(); d != "" {
		msg += ": " + d
	}
	return msg
}

// Detail returns the "detail" field of a JSON error body, if there is one.
func (e *APIError) Detail() string {
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(e.Body, &body) != nil {
		return ""
	}
	return body.Detail
}

// SessionError is a terminal authentication failure: no refresh token was
// stored, or the refresh exchange itself failed. Credentials have already
// been wiped when a caller sees it.
type SessionError struct {
	Cause error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSessionExpired, e.Cause)
}

func (e *SessionError) Unwrap() []error {
	return []error{ErrSessionExpired, e.Cause}
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return statusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return statusOf(err) == http.StatusNotFound }
