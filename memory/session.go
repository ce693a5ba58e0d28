package memory

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/auth"
	"github.com/google/uuid"
)

// Compile-time check that SessionService implements safecheck.SessionService.
var _ safecheck.SessionService = (*SessionService)(nil)

// SessionService implements safecheck.SessionService in memory.
type SessionService struct {
	store *Store
}

func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, safecheck.Internal("Failed to generate session token", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, ok := s.store.users[userID]
	if !ok {
		return nil, safecheck.NotFound("User not found")
	}

	now := s.store.now()
	user := rec.user
	session := &safecheck.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(duration),
		CreatedAt: now,
		User:      &user,
	}
	stored := *session
	s.store.sessions[token] = &stored
	return session, nil
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*safecheck.Session, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	stored, ok := s.store.sessions[token]
	if !ok {
		return nil, safecheck.NotFound("Session not found")
	}
	if s.store.now().After(stored.ExpiresAt) {
		return nil, safecheck.Unauthorized("Session expired")
	}

	session := *stored
	if rec, ok := s.store.users[stored.UserID]; ok {
		user := rec.user
		session.User = &user
	}
	return &session, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.sessions[token]; !ok {
		return safecheck.NotFound("Session not found")
	}
	delete(s.store.sessions, token)
	return nil
}

func (s *SessionService) DeleteExpiredSessions(ctx context.Context) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()
	deleted := 0
	for token, session := range s.store.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.store.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}
