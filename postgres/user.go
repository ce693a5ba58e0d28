package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface check
var _ safecheck.UserService = (*UserService)(nil)

// UserService is a PostgreSQL implementation of safecheck.UserService.
type UserService struct {
	db *DB
}

const userColumns = `id, email, display_name, role, created_at, updated_at`

func scanUser(row pgx.Row) (*safecheck.User, error) {
	var u safecheck.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*safecheck.User, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("User not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find user", err)
	}
	return user, nil
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*safecheck.User, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("User not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find user", err)
	}
	return user, nil
}

func (s *UserService) FindUsers(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error) {
	where, args := buildWhere(map[string]any{
		"id":           ptrArg(filter.ID),
		"lower(email)": lowerArg(filter.Email),
		"role":         ptrArg((*string)(filter.Role)),
	})

	var total int
	if err := s.db.pool.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, safecheck.Internal("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC` + limitOffset(filter.Limit, filter.Offset)
	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, safecheck.Internal("Failed to list users", err)
	}
	defer rows.Close()

	users := []*safecheck.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, safecheck.Internal("Failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, safecheck.Internal("Failed to list users", err)
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

	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, display_name, role, password_hash)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4)
		 RETURNING `+userColumns,
		user.Email, user.DisplayName, user.Role, hash)

	created, err := scanUser(row)
	if isUniqueViolation(err) {
		return safecheck.Conflict("Email already registered")
	} else if err != nil {
		return safecheck.Internal("Failed to create user", err)
	}
	*user = *created
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, upd safecheck.UserUpdate) (*safecheck.User, error) {
	if upd.Role != nil && !upd.Role.IsValid() {
		return nil, safecheck.Invalid("Role must be admin or inspector")
	}

	row := s.db.pool.QueryRow(ctx,
		`UPDATE users SET
		   display_name = COALESCE($2, display_name),
		   role         = COALESCE($3, role),
		   updated_at   = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, upd.DisplayName, (*string)(upd.Role))

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("User not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to update user", err)
	}
	return user, nil
}

func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (*safecheck.User, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT id, email, display_name, role, created_at, updated_at, password_hash
		 FROM users WHERE lower(email) = lower($1)`, email)

	var user safecheck.User
	var hash string
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.Unauthorized("Invalid email or password")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to verify credentials", err)
	}

	if err := auth.VerifyPassword(password, hash); err != nil {
		return nil, safecheck.Unauthorized("Invalid email or password")
	}
	return &user, nil
}

// lowerArg lower-cases an optional email filter so the comparison matches
// the case-insensitive unique index.
func lowerArg(s *string) any {
	if s == nil {
		return nil
	}
	return strings.ToLower(*s)
}
