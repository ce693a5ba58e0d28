package memory

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time check that TemplateService implements safecheck.TemplateService.
var _ safecheck.TemplateService = (*TemplateService)(nil)

// TemplateService implements safecheck.TemplateService in memory.
type TemplateService struct {
	store *Store
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id uuid.UUID) (*safecheck.Template, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rec, ok := s.store.templates[id]
	if !ok {
		return nil, safecheck.NotFound("Template not found")
	}
	return copyTemplate(&rec.template), nil
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter safecheck.TemplateFilter) ([]*safecheck.Template, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var recs []*templateRecord
	for _, rec := range s.store.templates {
		if filter.ID != nil && rec.template.ID != *filter.ID {
			continue
		}
		recs = append(recs, rec)
	}

	sortByCreatedDesc(recs, func(r *templateRecord) (createdAt time.Time, seq int64) {
		return r.template.CreatedAt, r.seq
	})

	total := len(recs)
	recs = paginate(recs, filter.Offset, filter.Limit)

	templates := make([]*safecheck.Template, 0, len(recs))
	for _, rec := range recs {
		templates = append(templates, copyTemplate(&rec.template))
	}
	return templates, total, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *safecheck.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()
	template.ID = uuid.New()
	template.CreatedAt = now
	template.UpdatedAt = now
	s.store.templates[template.ID] = &templateRecord{template: *copyTemplate(template), seq: s.store.nextSeq()}
	return nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, upd safecheck.TemplateUpdate) (*safecheck.Template, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, ok := s.store.templates[id]
	if !ok {
		return nil, safecheck.NotFound("Template not found")
	}

	updated := rec.template
	if upd.Name != nil {
		updated.Name = *upd.Name
	}
	if upd.Description != nil {
		updated.Description = *upd.Description
	}
	if upd.Items != nil {
		updated.Items = append([]safecheck.CheckItem(nil), (*upd.Items)...)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.store.now()
	rec.template = updated

	return copyTemplate(&rec.template), nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.templates[id]; !ok {
		return safecheck.NotFound("Template not found")
	}
	delete(s.store.templates, id)
	return nil
}

func copyTemplate(t *safecheck.Template) *safecheck.Template {
	dup := *t
	dup.Items = append([]safecheck.CheckItem(nil), t.Items...)
	return &dup
}
