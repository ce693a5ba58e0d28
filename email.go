package safecheck

import "context"

// EmailService defines operations for sending notification emails.
type EmailService interface {
	// SendInspectionSubmitted notifies recipients that an inspection was
	// submitted. Delivery is best effort; callers treat failures as
	// non-fatal.
	SendInspectionSubmitted(ctx context.Context, to []string, inspection *Inspection) error
}

// EmailConfig holds configuration for email services.
type EmailConfig struct {
	// Provider is the email provider ("mock" or "postmark").
	Provider string

	// FromAddress is the sender email address.
	FromAddress string

	// FromName is the sender display name.
	FromName string

	// Postmark-specific configuration
	PostmarkServerToken  string
	PostmarkAccountToken string
}
