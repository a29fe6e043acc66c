package client

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks connection-level failures: the server never produced
// a response (DNS failure, refused connection, timeout).
var ErrUnreachable = errors.New("cannot reach server")

// ErrMalformed marks a success status whose body did not match the expected
// shape, e.g. a login response with no access token.
var ErrMalformed = errors.New("malformed server response")

// APIError represents a non-2xx HTTP response from the API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
