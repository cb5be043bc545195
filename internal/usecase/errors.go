package usecase

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotAuthenticated is returned by admin-only operations without a session.
var ErrNotAuthenticated = errors.New("admin session required")

// DefaultAuthFailure is shown when the backend rejects a password without a
// message of its own.
const DefaultAuthFailure = "Mot de passe incorrect"

// AuthError is a rejected login. It never wraps a transport error.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ValidationError lists the contact form fields that failed local checks.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid contact form: %s", strings.Join(e.Fields, ", "))
}
