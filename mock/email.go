package mock

import (
	"context"

	"github.com/fieldsafe/safecheck"
)

// Compile-time interface check
var _ safecheck.EmailService = (*EmailService)(nil)

// EmailService is a mock implementation of safecheck.EmailService.
type EmailService struct {
	SendInspectionSubmittedFn func(ctx context.Context, to []string, inspection *safecheck.Inspection) error
}

func (s *EmailService) SendInspectionSubmitted(ctx context.Context, to []string, inspection *safecheck.Inspection) error {
	if s.SendInspectionSubmittedFn != nil {
		return s.SendInspectionSubmittedFn(ctx, to, inspection)
	}
	return nil
}
