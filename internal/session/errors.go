package session

import (
	"errors"

	"github.com/kiralabs/kira/pkg/client"
)

// ErrorKind classifies an authentication failure.
type ErrorKind int

const (
	// KindNetwork: the server never answered.
	KindNetwork ErrorKind = iota
	// KindBadCredentials: the server rejected the username/password pair.
	KindBadCredentials
	// KindConflict: registration collided with an existing account.
	KindConflict
	// KindValidation: the input was rejected before or by the server.
	KindValidation
	// KindServer: the server failed unexpectedly.
	KindServer
	// KindMalformed: a success status whose body was missing expected fields.
	KindMalformed
)

// AuthError is a classified authentication failure carrying a message fit
// for inline display on the form that triggered it.
type AuthError struct {
	Kind    ErrorKind
	Message string
	err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.err }

// IsKind reports whether err is an AuthError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind == kind
	}
	return false
}

func validationError(err error) *AuthError {
	return &AuthError{Kind: KindValidation, Message: err.Error(), err: err}
}

// classifyLogin maps gateway failures during login (token exchange or the
// follow-up identity confirmation) onto the error taxonomy. The server's
// detail string wins when present; each kind has a generic fallback.
func classifyLogin(err error) *AuthError {
	switch {
	case errors.Is(err, client.ErrUnreachable):
		return &AuthError{Kind: KindNetwork, Message: "Cannot reach the server. Check your connection and try again.", err: err}
	case errors.Is(err, client.ErrMalformed):
		return &AuthError{Kind: KindMalformed, Message: "The server returned an unexpected response.", err: err}
	}

	detail := detailOf(err)
	switch code := client.StatusOf(err); {
	case code == 400 || code == 401:
		if detail == "" {
			detail = "Invalid username or password."
		}
		return &AuthError{Kind: KindBadCredentials, Message: detail, err: err}
	case code == 422:
		if detail == "" {
			detail = "The server rejected the submitted credentials."
		}
		return &AuthError{Kind: KindValidation, Message: detail, err: err}
	case code >= 500:
		return &AuthError{Kind: KindServer, Message: "The server hit an unexpected error. Try again later.", err: err}
	default:
		if detail == "" {
			detail = "Login failed."
		}
		return &AuthError{Kind: KindServer, Message: detail, err: err}
	}
}

// classifyRegister maps gateway failures during registration. Conflict,
// validation and server faults each get a distinct user-facing message.
func classifyRegister(err error) *AuthError {
	switch {
	case errors.Is(err, client.ErrUnreachable):
		return &AuthError{Kind: KindNetwork, Message: "Cannot reach the server. Check your connection and try again.", err: err}
	case errors.Is(err, client.ErrMalformed):
		return &AuthError{Kind: KindMalformed, Message: "The server returned an unexpected response.", err: err}
	}

	detail := detailOf(err)
	switch code := client.StatusOf(err); {
	case code == 409:
		if detail == "" {
			detail = "An account with that username or email already exists."
		}
		return &AuthError{Kind: KindConflict, Message: detail, err: err}
	case code == 422:
		if detail == "" {
			detail = "The submitted information was not accepted."
		}
		return &AuthError{Kind: KindValidation, Message: detail, err: err}
	case code >= 500:
		return &AuthError{Kind: KindServer, Message: "Registration failed because of a server error. Try again later.", err: err}
	default:
		if detail == "" {
			detail = "Registration failed."
		}
		return &AuthError{Kind: KindServer, Message: detail, err: err}
	}
}

func detailOf(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
