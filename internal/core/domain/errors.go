package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrClientNotFound  = errors.New("client not found")
	ErrProjectNotFound = errors.New("project not found")

	// ErrClientInUse guards against dangling project references: a client
	// cannot be deleted while projects still point at it.
	ErrClientInUse = errors.New("client is referenced by existing projects")

	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("validation failed")
)
