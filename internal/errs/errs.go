// Package errs defines the error taxonomy shared by all services and handlers.
package errs

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password at
	// sign-in. Handlers must surface it as one generic message so the two
	// causes cannot be told apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means the request carried no token, or a token that
	// failed signature, decode, or expiry checks.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound means a token verified but its user no longer exists.
	// Deleting an account implicitly revokes every token it ever issued.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound covers a missing resource and a resource owned by someone
	// else; callers cannot distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint is violated, such as
	// signing up with an email that is already registered.
	ErrConflict = errors.New("already exists")

	// ErrValidation marks a request whose payload fails domain validation.
	ErrValidation = errors.New("validation failed")
)

// Validation wraps ErrValidation with a human-readable detail.
func Validation(detail string) error {
	return &validationError{detail: detail}
}

type validationError struct {
	detail string
}

func (e *validationError) Error() string { return e.detail }

func (e *validationError) Unwrap() error { return ErrValidation }
