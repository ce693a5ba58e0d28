package safecheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session represents an active user session. Sessions are created on login
// and destroyed on logout; the current actor travels with the request
// context, never in a package-level global.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`

	// Joined fields (populated by some queries)
	User *User `json:"user,omitempty"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionService defines operations for managing user sessions.
type SessionService interface {
	// CreateSession creates a new session for a user.
	// Returns the session with a generated token.
	CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*Session, error)

	// FindSessionByToken retrieves a session with its associated user.
	// Returns ENOTFOUND if the session does not exist.
	// Returns EUNAUTHORIZED if the session has expired.
	FindSessionByToken(ctx context.Context, token string) (*Session, error)

	// DeleteSession deletes a session (logout).
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes expired sessions from the store.
	// Returns the number of sessions deleted.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
