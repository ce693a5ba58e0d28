package mock

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.UserService = (*UserService)(nil)

// UserService is a mock implementation of safecheck.UserService.
type UserService struct {
	FindUserByIDFn    func(ctx context.Context, id uuid.UUID) (*safecheck.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*safecheck.User, error)
	FindUsersFn       func(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error)
	CreateUserFn      func(ctx context.Context, user *safecheck.User, password string) error
	UpdateUserFn      func(ctx context.Context, id uuid.UUID, upd safecheck.UserUpdate) (*safecheck.User, error)
	VerifyPasswordFn  func(ctx context.Context, email, password string) (*safecheck.User, error)
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*safecheck.User, error) {
	if s.FindUserByIDFn != nil {
		return s.FindUserByIDFn(ctx, id)
	}
	return nil, safecheck.NotFound("User not found")
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*safecheck.User, error) {
	if s.FindUserByEmailFn != nil {
		return s.FindUserByEmailFn(ctx, email)
	}
	return nil, safecheck.NotFound("User not found")
}

func (s *UserService) FindUsers(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error) {
	if s.FindUsersFn != nil {
		return s.FindUsersFn(ctx, filter)
	}
	return []*safecheck.User{}, 0, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *safecheck.User, password string) error {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, user, password)
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, upd safecheck.UserUpdate) (*safecheck.User, error) {
	if s.UpdateUserFn != nil {
		return s.UpdateUserFn(ctx, id, upd)
	}
	return nil, safecheck.NotFound("User not found")
}

func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (*safecheck.User, error) {
	if s.VerifyPasswordFn != nil {
		return s.VerifyPasswordFn(ctx, email, password)
	}
	return nil, safecheck.Unauthorized("Invalid email or password")
}
