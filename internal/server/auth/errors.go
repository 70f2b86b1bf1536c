package auth

import (
	"errors"

	"github.com/iudanet/postboard/internal/server/jwt"
)

// Auth failures. All of them are user-input errors and are never retried.
var (
	// ErrUsernameTaken is returned by Signup when the username is already registered
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidInput is returned by Signup when username or password fail validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned by Login for an unknown username and
	// for a wrong password alike. The wrapped cause tells them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownUser is wrapped into ErrInvalidCredentials when the username does not exist
	ErrUnknownUser = errors.New("unknown user")

	// ErrPasswordMismatch is wrapped into ErrInvalidCredentials when the password is wrong
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrMissingCredential is returned when the request carries no credential
	ErrMissingCredential = errors.New("missing credential")

	// ErrStoreUnavailable wraps credential store failures. It is a service
	// error, not an auth failure.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Token failures, re-exported from the token service.
var (
	ErrMalformedToken   = jwt.ErrMalformedToken
	ErrInvalidSignature = jwt.ErrInvalidSignature
	ErrTokenExpired     = jwt.ErrTokenExpired
)
