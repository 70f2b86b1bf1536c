package jwt

import "errors"

// Token verification errors. Each failure mode is reported separately.
var (
	// ErrMalformedToken indicates the token cannot be parsed or lacks required claims
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature indicates the token was not signed by this server's key
	// or uses an unexpected algorithm
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired indicates the token is past its expiry
	ErrTokenExpired = errors.New("token expired")
)
