package storage

import (
	"context"
	"time"
)

// SessionStorage stores the current login session on the client.
// Only one session is kept at a time.
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns the stored session
	// Returns ErrSessionNotFound if there is none
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	// Returns ErrSessionNotFound if there is none
	DeleteSession(ctx context.Context) error
}

// Session is the client side view of a login
type Session struct {
	Username   string `json:"username"`
	Credential string `json:"credential"` // "Bearer <token>" как в cookie access_token
	UserID     int64  `json:"user_id"`
	ExpiresAt  int64  `json:"expires_at"` // unix seconds
}

// Expired reports whether the session token has expired at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(time.Unix(s.ExpiresAt, 0))
}
