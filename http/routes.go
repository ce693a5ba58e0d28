package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check routes (public)
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/health/live", s.handleLivenessCheck)
	s.echo.GET("/health/ready", s.handleReadinessCheck)

	// Prometheus metrics (public)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public auth routes, rate limited against credential stuffing
	auth := s.echo.Group("/api/auth", s.rateLimiter.Middleware())
	auth.POST("/register", s.handleRegister, s.OptionalAuth())
	auth.POST("/login", s.handleLogin)

	// Protected routes (require authentication)
	protected := s.echo.Group("/api")
	protected.Use(s.RequireAuth())

	// Auth (authenticated)
	protected.POST("/auth/logout", s.handleLogout)
	protected.GET("/auth/me", s.handleMe)

	// Facilities (mutations are admin only)
	protected.GET("/facilities", s.handleListFacilities)
	protected.GET("/facilities/:id", s.handleGetFacility)
	protected.POST("/facilities", s.handleCreateFacility, s.RequireAdmin())
	protected.PUT("/facilities/:id", s.handleUpdateFacility, s.RequireAdmin())
	protected.DELETE("/facilities/:id", s.handleDeleteFacility, s.RequireAdmin())

	// Templates (mutations are admin only)
	protected.GET("/templates", s.handleListTemplates)
	protected.GET("/templates/:id", s.handleGetTemplate)
	protected.POST("/templates", s.handleCreateTemplate, s.RequireAdmin())
	protected.PUT("/templates/:id", s.handleUpdateTemplate, s.RequireAdmin())
	protected.DELETE("/templates/:id", s.handleDeleteTemplate, s.RequireAdmin())

	// Users (admin only)
	protected.GET("/users", s.handleListUsers, s.RequireAdmin())

	// Inspections
	protected.POST("/inspections", s.handleCreateInspection)
	protected.GET("/inspections", s.handleListInspections)
	protected.GET("/inspections/:id", s.handleGetInspection)
	protected.PUT("/inspections/:id", s.handleSaveInspection)
	protected.POST("/inspections/:id/submit", s.handleSubmitInspection)

	// Photos
	protected.POST("/inspections/:id/photos", s.handleUploadPhotos)
	protected.DELETE("/inspections/:id/photos", s.handleRemovePhoto)

	// Reports
	protected.GET("/inspections/:id/report", s.handleInspectionReport)
}
