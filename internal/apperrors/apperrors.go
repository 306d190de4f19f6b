// Package apperrors defines the error taxonomy shared by the credential
// stores, the auth service and the route layer. Handlers match these
// sentinels with errors.Is to pick the user-facing page and status code.
package apperrors

import "errors"

var (
	// ErrValidation marks empty or otherwise unusable input fields.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks an attempt to register an existing username.
	ErrConflict = errors.New("username already exists")

	// ErrAuth marks bad credentials on login.
	ErrAuth = errors.New("invalid username or password")

	// ErrStorage marks an unexpected credential store failure.
	ErrStorage = errors.New("credential storage failure")

	// ErrNotFound marks a missing route or file.
	ErrNotFound = errors.New("not found")
)
