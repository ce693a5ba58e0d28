package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/internal/email"
	"github.com/fieldsafe/safecheck/internal/report"
	"github.com/fieldsafe/safecheck/internal/session"
	"github.com/fieldsafe/safecheck/internal/storage"
	"github.com/fieldsafe/safecheck/memory"
	"github.com/fieldsafe/safecheck/postgres"
)

// Services holds all application services.
type Services struct {
	FacilityService   safecheck.FacilityService
	TemplateService   safecheck.TemplateService
	InspectionService safecheck.InspectionService
	UserService       safecheck.UserService
	SessionService    safecheck.SessionService
	FileStorage       safecheck.FileStorage
	EmailService      safecheck.EmailService
	ReportGenerator   safecheck.ReportGenerator
}

// initServices initializes all application services. The pool is nil when
// the memory store is selected.
func initServices(ctx context.Context, pool *pgxpool.Pool, cfg *Config, logger *slog.Logger) (*Services, error) {
	services := &Services{}

	switch cfg.StoreProvider {
	case "memory":
		store := memory.NewStore()
		services.FacilityService = store.FacilityService
		services.TemplateService = store.TemplateService
		services.InspectionService = store.InspectionService
		services.UserService = store.UserService
		services.SessionService = store.SessionService
	default:
		db := postgres.NewDB(pool)
		services.FacilityService = db.FacilityService
		services.TemplateService = db.TemplateService
		services.InspectionService = db.InspectionService
		services.UserService = db.UserService
		services.SessionService = db.SessionService
	}
	logger.Info("store services initialized", slog.String("provider", cfg.StoreProvider))

	// Session lookups happen on every authenticated request, so front the
	// store with a short-lived cache.
	services.SessionService = session.NewCache(services.SessionService)

	fileStorage, err := storage.NewFileStorage(ctx, logger, safecheck.StorageConfig{
		Provider:  cfg.StorageProvider,
		LocalPath: cfg.StorageLocalPath,
		LocalURL:  cfg.StorageLocalURL,
		S3Bucket:  cfg.StorageS3Bucket,
		S3Region:  cfg.StorageS3Region,
		S3BaseURL: cfg.StorageS3BaseURL,
	})
	if err != nil {
		return nil, err
	}
	services.FileStorage = fileStorage
	logger.Info("file storage initialized", slog.String("provider", cfg.StorageProvider))

	services.EmailService = email.NewEmailService(logger, safecheck.EmailConfig{
		Provider:             cfg.EmailProvider,
		FromAddress:          cfg.EmailFromAddress,
		FromName:             cfg.EmailFromName,
		PostmarkServerToken:  cfg.EmailPostmarkToken,
		PostmarkAccountToken: cfg.EmailPostmarkAccount,
	})
	logger.Info("email service initialized", slog.String("provider", cfg.EmailProvider))

	services.ReportGenerator = report.NewGenerator(logger)
	logger.Info("report generator initialized")

	return services, nil
}
