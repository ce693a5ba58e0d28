package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// RegisterRequest is the request payload for user registration.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Role        string `json:"role" validate:"omitempty,oneof=admin inspector"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func userResponse(user *safecheck.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}
}

func (s *Server) handleRegister(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	// Only an authenticated admin can grant the admin role; anonymous
	// registration always yields an inspector.
	role := safecheck.RoleInspector
	if req.Role != "" && safecheck.IsAdmin(ctx) {
		role = safecheck.Role(req.Role)
	}

	user := &safecheck.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
	}

	if err := s.userService.CreateUser(ctx, user, req.Password); err != nil {
		return err
	}

	s.log(c).Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))

	return RespondCreated(c, userResponse(user))
}

// LoginRequest is the request payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

func (s *Server) handleLogin(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := s.userService.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	session, err := s.sessionService.CreateSession(ctx, user.ID, s.SessionDuration)
	if err != nil {
		s.log(c).Error("failed to create session", slog.String("error", err.Error()))
		return safecheck.Internal("Login failed", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	s.log(c).Info("user logged in", slog.String("user_id", user.ID.String()))

	return RespondOK(c, userResponse(user))
}

func (s *Server) handleLogout(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return safecheck.Invalid("Not logged in")
	}

	if err := s.sessionService.DeleteSession(ctx, cookie.Value); err != nil {
		s.log(c).Error("failed to delete session", slog.String("error", err.Error()))
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	s.log(c).Info("user logged out")

	return RespondOK(c, map[string]string{"message": "logged out successfully"})
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	return RespondOK(c, userResponse(user))
}
