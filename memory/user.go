package memory

import (
	"context"
	"strings"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/auth"
	"github.com/google/uuid"
)

// Compile-time check that UserService implements safecheck.UserService.
var _ safecheck.UserService = (*UserService)(nil)

// UserService implements safecheck.UserService in memory.
type UserService struct {
	store *Store
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*safecheck.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rec, ok := s.store.users[id]
	if !ok {
		return nil, safecheck.NotFound("User not found")
	}
	user := rec.user
	return &user, nil
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*safecheck.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rec := s.findByEmail(email)
	if rec == nil {
		return nil, safecheck.NotFound("User not found")
	}
	user := rec.user
	return &user, nil
}

func (s *UserService) FindUsers(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var recs []*userRecord
	for _, rec := range s.store.users {
		if filter.ID != nil && rec.user.ID != *filter.ID {
			continue
		}
		if filter.Email != nil && !strings.EqualFold(rec.user.Email, *filter.Email) {
			continue
		}
		if filter.Role != nil && rec.user.Role != *filter.Role {
			continue
		}
		recs = append(recs, rec)
	}

	sortByCreatedDesc(recs, func(r *userRecord) (createdAt time.Time, seq int64) {
		return r.user.CreatedAt, r.seq
	})

	total := len(recs)
	recs = paginate(recs, filter.Offset, filter.Limit)

	users := make([]*safecheck.User, 0, len(recs))
	for _, rec := range recs {
		user := rec.user
		users = append(users, &user)
	}
	return users, total, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *safecheck.User, password string) error {
	if !user.Role.IsValid() {
		return safecheck.Invalid("Role must be admin or inspector")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return safecheck.Invalid("%s", err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.findByEmail(user.Email) != nil {
		return safecheck.Conflict("Email already registered")
	}

	now := s.store.now()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.store.users[user.ID] = &userRecord{user: *user, passwordHash: hash, seq: s.store.nextSeq()}
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, upd safecheck.UserUpdate) (*safecheck.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, ok := s.store.users[id]
	if !ok {
		return nil, safecheck.NotFound("User not found")
	}

	if upd.DisplayName != nil {
		rec.user.DisplayName = *upd.DisplayName
	}
	if upd.Role != nil {
		if !upd.Role.IsValid() {
			return nil, safecheck.Invalid("Role must be admin or inspector")
		}
		rec.user.Role = *upd.Role
	}
	rec.user.UpdatedAt = s.store.now()

	user := rec.user
	return &user, nil
}

func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (*safecheck.User, error) {
	s.store.mu.RLock()
	rec := s.findByEmail(email)
	s.store.mu.RUnlock()

	if rec == nil {
		return nil, safecheck.Unauthorized("Invalid email or password")
	}
	if err := auth.VerifyPassword(password, rec.passwordHash); err != nil {
		return nil, safecheck.Unauthorized("Invalid email or password")
	}
	user := rec.user
	return &user, nil
}

// findByEmail must be called with the lock held.
func (s *UserService) findByEmail(email string) *userRecord {
	for _, rec := range s.store.users {
		if strings.EqualFold(rec.user.Email, email) {
			return rec
		}
	}
	return nil
}
