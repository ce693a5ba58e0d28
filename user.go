package safecheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Role governs which operations an actor may invoke.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
)

// IsValid returns true if the role is a recognized value.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleInspector
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserService defines operations for managing users.
type UserService interface {
	// FindUserByID retrieves a user by their ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindUserByEmail retrieves a user by their email address.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// FindUsers retrieves users matching the filter criteria.
	// Returns the matching users and total count.
	FindUsers(ctx context.Context, filter UserFilter) ([]*User, int, error)

	// CreateUser creates a new user with the given password.
	// Returns ECONFLICT if the email already exists.
	CreateUser(ctx context.Context, user *User, password string) error

	// UpdateUser updates an existing user.
	// Returns ENOTFOUND if the user does not exist.
	UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*User, error)

	// VerifyPassword verifies a user's credentials and returns the user if
	// valid. Returns EUNAUTHORIZED if credentials are invalid.
	VerifyPassword(ctx context.Context, email, password string) (*User, error)
}

// UserFilter defines criteria for filtering users.
type UserFilter struct {
	ID    *uuid.UUID
	Email *string
	Role  *Role

	// Pagination
	Offset int
	Limit  int
}

// UserUpdate defines fields that can be updated on a user.
// Pointer fields: nil = don't update, non-nil = update to this value.
type UserUpdate struct {
	DisplayName *string
	Role        *Role
}
