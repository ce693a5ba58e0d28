package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface check
var _ safecheck.SessionService = (*SessionService)(nil)

// SessionService is a PostgreSQL implementation of safecheck.SessionService.
type SessionService struct {
	db *DB
}

func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, safecheck.Internal("Failed to generate session token", err)
	}

	var session safecheck.Session
	err = s.db.pool.QueryRow(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 RETURNING id, user_id, token, expires_at, created_at`,
		userID, token, time.Now().Add(duration)).
		Scan(&session.ID, &session.UserID, &session.Token, &session.ExpiresAt, &session.CreatedAt)
	if isForeignKeyViolation(err) {
		return nil, safecheck.NotFound("User not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to create session", err)
	}
	return &session, nil
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*safecheck.Session, error) {
	var session safecheck.Session
	var user safecheck.User
	err := s.db.pool.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.token, s.expires_at, s.created_at,
		        u.id, u.email, u.display_name, u.role, u.created_at, u.updated_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1`, token).
		Scan(&session.ID, &session.UserID, &session.Token, &session.ExpiresAt, &session.CreatedAt,
			&user.ID, &user.Email, &user.DisplayName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Session not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find session", err)
	}

	if session.IsExpired() {
		return nil, safecheck.Unauthorized("Session expired")
	}
	session.User = &user
	return &session, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return safecheck.Internal("Failed to delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return safecheck.NotFound("Session not found")
	}
	return nil
}

func (s *SessionService) DeleteExpiredSessions(ctx context.Context) (int, error) {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, safecheck.Internal("Failed to delete expired sessions", err)
	}
	return int(tag.RowsAffected()), nil
}
