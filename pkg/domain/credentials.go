package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// usernameRe restricts usernames to letters, digits, underscores and hyphens.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// emailRe is a permissive shape check — real validation happens server-side.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginCredentials is a transient username/password pair. Never persisted.
type LoginCredentials struct {
	Username string
	Password string
}

// Validate checks that both fields are filled in.
func (c LoginCredentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return errors.New("Please fill in all fields")
	}
	return nil
}

// RegisterCredentials is the transient input to account creation.
type RegisterCredentials struct {
	Username string
	Email    string
	Password string
}

// Validate applies the signup form rules: username 3-50 chars from a
// restricted charset, a plausible email, and a minimum password length.
// The first failing rule wins; its message is shown inline on the form.
func (c RegisterCredentials) Validate() error {
	username := strings.TrimSpace(c.Username)
	switch {
	case username == "":
		return errors.New("Username is required")
	case utf8.RuneCountInString(username) < 3 || utf8.RuneCountInString(username) > 50:
		return errors.New("Username must be between 3 and 50 characters")
	case !usernameRe.MatchString(username):
		return errors.New("Username can only contain letters, numbers, underscores, and hyphens")
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		return errors.New("Email is required")
	case !emailRe.MatchString(email):
		return errors.New("Please enter a valid email address")
	}

	switch {
	case c.Password == "":
		return errors.New("Password is required")
	case utf8.RuneCountInString(c.Password) < 4:
		return errors.New("Password must be at least 4 characters")
	}
	return nil
}
