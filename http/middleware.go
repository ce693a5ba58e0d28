package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/middleware"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "session"

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	s.echo.Use(echomw.Recover())
	s.echo.Use(echomw.RequestID())
	s.echo.Use(s.requestLoggerMiddleware())
	s.echo.Use(middleware.Metrics())

	s.echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: false,
	}))

	s.echo.HTTPErrorHandler = s.httpErrorHandler
}

// requestLoggerMiddleware creates a middleware that logs requests with context.
func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			logger := s.logger.With(
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
			)
			c.Set("logger", logger)

			ctx := safecheck.NewContextWithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			logAttrs := []any{
				slog.Int("status", status),
				slog.Duration("duration", duration),
			}

			if err != nil {
				logAttrs = append(logAttrs, slog.String("error", err.Error()))
				logger.Error("request failed", logAttrs...)
			} else if status >= 500 {
				logger.Error("request completed with server error", logAttrs...)
			} else if status >= 400 {
				logger.Warn("request completed with client error", logAttrs...)
			} else {
				logger.Info("request completed", logAttrs...)
			}

			return err
		}
	}
}

// httpErrorHandler handles errors and returns appropriate responses.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}

	_ = HandleError(c, s.logger, err)
}

// SessionMiddleware validates the session cookie and attaches the user to
// the request context. If required is true, missing or invalid sessions are
// rejected with 401.
func (s *Server) SessionMiddleware(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := s.getRequestLogger(c)

			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				if required {
					logger.Debug("session required but no cookie found")
					return safecheck.Unauthorized("Authentication required")
				}
				return next(c)
			}

			session, err := s.sessionService.FindSessionByToken(c.Request().Context(), cookie.Value)
			if err != nil {
				if required {
					if safecheck.IsErrorCode(err, safecheck.EUNAUTHORIZED) {
						logger.Debug("session expired or invalid")
						return err
					}
					if safecheck.IsErrorCode(err, safecheck.ENOTFOUND) {
						return safecheck.Unauthorized("Authentication required")
					}
					logger.Error("session validation failed", slog.String("error", err.Error()))
					return safecheck.Internal("Failed to validate session", err)
				}
				return next(c)
			}

			ctx := safecheck.NewContextWithUser(c.Request().Context(), session.User)
			ctx = safecheck.NewContextWithSession(ctx, session)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAuth is a middleware that requires authentication.
func (s *Server) RequireAuth() echo.MiddlewareFunc {
	return s.SessionMiddleware(true)
}

// OptionalAuth is a middleware that checks for authentication but doesn't require it.
func (s *Server) OptionalAuth() echo.MiddlewareFunc {
	return s.SessionMiddleware(false)
}

// RequireAdmin rejects authenticated non-admin users with 403.
func (s *Server) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			if user.Role != safecheck.RoleAdmin {
				return safecheck.Forbidden("Admin access required")
			}
			return next(c)
		}
	}
}

// getRequestLogger retrieves the request-scoped logger from context.
func (s *Server) getRequestLogger(c echo.Context) *slog.Logger {
	if logger, ok := c.Get("logger").(*slog.Logger); ok {
		return logger
	}
	return s.logger
}
