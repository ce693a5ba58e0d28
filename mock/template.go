package mock

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.TemplateService = (*TemplateService)(nil)

// TemplateService is a mock implementation of safecheck.TemplateService.
type TemplateService struct {
	FindTemplateByIDFn func(ctx context.Context, id uuid.UUID) (*safecheck.Template, error)
	FindTemplatesFn    func(ctx context.Context, filter safecheck.TemplateFilter) ([]*safecheck.Template, int, error)
	CreateTemplateFn   func(ctx context.Context, template *safecheck.Template) error
	UpdateTemplateFn   func(ctx context.Context, id uuid.UUID, upd safecheck.TemplateUpdate) (*safecheck.Template, error)
	DeleteTemplateFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id uuid.UUID) (*safecheck.Template, error) {
	if s.FindTemplateByIDFn != nil {
		return s.FindTemplateByIDFn(ctx, id)
	}
	return nil, safecheck.NotFound("Template not found")
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter safecheck.TemplateFilter) ([]*safecheck.Template, int, error) {
	if s.FindTemplatesFn != nil {
		return s.FindTemplatesFn(ctx, filter)
	}
	return []*safecheck.Template{}, 0, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *safecheck.Template) error {
	if s.CreateTemplateFn != nil {
		return s.CreateTemplateFn(ctx, template)
	}
	template.ID = uuid.New()
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	return nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, upd safecheck.TemplateUpdate) (*safecheck.Template, error) {
	if s.UpdateTemplateFn != nil {
		return s.UpdateTemplateFn(ctx, id, upd)
	}
	return nil, safecheck.NotFound("Template not found")
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if s.DeleteTemplateFn != nil {
		return s.DeleteTemplateFn(ctx, id)
	}
	return nil
}
