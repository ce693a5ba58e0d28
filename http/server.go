// Package http provides the Echo-based HTTP transport for the inspection
// service.
package http

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/middleware"
	"github.com/fieldsafe/safecheck/internal/validation"
)

// Server represents the HTTP server with all its dependencies.
type Server struct {
	echo        *echo.Echo
	ln          net.Listener
	logger      *slog.Logger
	rateLimiter *middleware.RateLimiter

	// Configuration
	Addr string

	// Session configuration
	SessionDuration time.Duration
	SessionSecure   bool

	// Domain services
	facilityService   safecheck.FacilityService
	templateService   safecheck.TemplateService
	inspectionService safecheck.InspectionService
	userService       safecheck.UserService
	sessionService    safecheck.SessionService

	// External services
	fileStorage     safecheck.FileStorage
	emailService    safecheck.EmailService
	reportGenerator safecheck.ReportGenerator
}

// Config holds the configuration for creating a new Server.
type Config struct {
	Addr   string
	Logger *slog.Logger

	// Session configuration
	SessionDuration time.Duration
	SessionSecure   bool

	// Domain services
	FacilityService   safecheck.FacilityService
	TemplateService   safecheck.TemplateService
	InspectionService safecheck.InspectionService
	UserService       safecheck.UserService
	SessionService    safecheck.SessionService

	// External services
	FileStorage     safecheck.FileStorage
	EmailService    safecheck.EmailService
	ReportGenerator safecheck.ReportGenerator
}

// NewServer creates a new HTTP server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		Addr:              cfg.Addr,
		logger:            cfg.Logger,
		SessionDuration:   cfg.SessionDuration,
		SessionSecure:     cfg.SessionSecure,
		facilityService:   cfg.FacilityService,
		templateService:   cfg.TemplateService,
		inspectionService: cfg.InspectionService,
		userService:       cfg.UserService,
		sessionService:    cfg.SessionService,
		fileStorage:       cfg.FileStorage,
		emailService:      cfg.EmailService,
		reportGenerator:   cfg.ReportGenerator,
	}

	if s.SessionDuration == 0 {
		s.SessionDuration = 24 * time.Hour
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = validation.NewValidator()

	s.rateLimiter = middleware.NewRateLimiter(s.logger, middleware.AuthRateLimitConfig())

	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// Echo returns the underlying Echo instance.
// Use sparingly - prefer registering routes through Server methods.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Open starts the HTTP server.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.echo.Server.Serve(s.ln); err != nil {
			s.logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("server started", slog.String("addr", s.Addr))
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.rateLimiter.Shutdown()
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// URL returns the URL of the server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}
