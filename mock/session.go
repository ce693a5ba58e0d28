package mock

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of safecheck.SessionService.
type SessionService struct {
	CreateSessionFn         func(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error)
	FindSessionByTokenFn    func(ctx context.Context, token string) (*safecheck.Session, error)
	DeleteSessionFn         func(ctx context.Context, token string) error
	DeleteExpiredSessionsFn func(ctx context.Context) (int, error)
}

func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, userID, duration)
	}
	now := time.Now()
	return &safecheck.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "mock-session-token",
		ExpiresAt: now.Add(duration),
		CreatedAt: now,
	}, nil
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*safecheck.Session, error) {
	if s.FindSessionByTokenFn != nil {
		return s.FindSessionByTokenFn(ctx, token)
	}
	return nil, safecheck.NotFound("Session not found")
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	if s.DeleteSessionFn != nil {
		return s.DeleteSessionFn(ctx, token)
	}
	return nil
}

func (s *SessionService) DeleteExpiredSessions(ctx context.Context) (int, error) {
	if s.DeleteExpiredSessionsFn != nil {
		return s.DeleteExpiredSessionsFn(ctx)
	}
	return 0, nil
}
