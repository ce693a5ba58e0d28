// Package email sends inspection notification emails.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keighl/postmark"

	"github.com/fieldsafe/safecheck"
)

// NewEmailService creates an email service based on the provider configuration.
func NewEmailService(logger *slog.Logger, config safecheck.EmailConfig) safecheck.EmailService {
	switch config.Provider {
	case "postmark":
		return newPostmarkEmailService(logger, config)
	default:
		return newMockEmailService(logger, config)
	}
}

// mockEmailService is a mock implementation that logs instead of sending emails.
type mockEmailService struct {
	logger *slog.Logger
	config safecheck.EmailConfig
}

func newMockEmailService(logger *slog.Logger, config safecheck.EmailConfig) *mockEmailService {
	return &mockEmailService{
		logger: logger,
		config: config,
	}
}

// SendInspectionSubmitted logs the notification instead of sending it.
func (s *mockEmailService) SendInspectionSubmitted(ctx context.Context, to []string, inspection *safecheck.Inspection) error {
	s.logger.Info("📧 MOCK EMAIL: Inspection submitted",
		slog.String("to", strings.Join(to, ", ")),
		slog.String("inspection_id", inspection.ID.String()),
		slog.String("facility", inspection.FacilityName),
		slog.String("inspector", inspection.InspectorName),
	)
	return nil
}

// postmarkEmailService sends emails via Postmark.
type postmarkEmailService struct {
	client *postmark.Client
	logger *slog.Logger
	config safecheck.EmailConfig
}

func newPostmarkEmailService(logger *slog.Logger, config safecheck.EmailConfig) *postmarkEmailService {
	client := postmark.NewClient(config.PostmarkServerToken, config.PostmarkAccountToken)
	return &postmarkEmailService{
		client: client,
		logger: logger,
		config: config,
	}
}

// SendInspectionSubmitted notifies each recipient that an inspection was
// submitted. Delivery is best effort; the first send failure is returned.
func (s *postmarkEmailService) SendInspectionSubmitted(ctx context.Context, to []string, inspection *safecheck.Inspection) error {
	passed, totalCheckbox := safecheck.PassCount(inspection.Items, inspection.Results)

	subject := fmt.Sprintf("Inspection submitted: %s", inspection.FacilityName)
	textBody := fmt.Sprintf(
		"%s submitted the %q inspection for %s on %s.\n\nPass: %d / %d checkbox items | Photos: %d\n",
		inspection.InspectorName, inspection.TemplateName, inspection.FacilityName, inspection.Date,
		passed, totalCheckbox, len(inspection.Photos))
	htmlBody := fmt.Sprintf(`
		<h2>Inspection submitted</h2>
		<p><strong>%s</strong> submitted the <strong>%s</strong> inspection for <strong>%s</strong> on %s.</p>
		<p>Pass: %d / %d checkbox items | Photos: %d</p>
	`, inspection.InspectorName, inspection.TemplateName, inspection.FacilityName, inspection.Date,
		passed, totalCheckbox, len(inspection.Photos))

	for _, recipient := range to {
		email := postmark.Email{
			From:       fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
			To:         recipient,
			Subject:    subject,
			TextBody:   textBody,
			HtmlBody:   htmlBody,
			Tag:        "inspection-submitted",
			TrackOpens: true,
		}

		if _, err := s.client.SendEmail(email); err != nil {
			s.logger.Error("failed to send inspection email via Postmark",
				slog.String("to", recipient),
				slog.String("inspection_id", inspection.ID.String()),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("failed to send inspection email: %w", err)
		}

		s.logger.Info("inspection email sent via Postmark",
			slog.String("to", recipient),
			slog.String("inspection_id", inspection.ID.String()),
		)
	}
	return nil
}
