package mock

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.InspectionService = (*InspectionService)(nil)

// InspectionService is a mock implementation of safecheck.InspectionService.
type InspectionService struct {
	FindInspectionByIDFn func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error)
	FindInspectionsFn    func(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error)
	CreateInspectionFn   func(ctx context.Context, inspection *safecheck.Inspection) error
	SaveInspectionFn     func(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error)
	SubmitInspectionFn   func(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error)
	AppendPhotosFn       func(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error)
	RemovePhotoFn        func(ctx context.Context, id uuid.UUID, url string) (*safecheck.Inspection, error)
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
	if s.FindInspectionByIDFn != nil {
		return s.FindInspectionByIDFn(ctx, id)
	}
	return nil, safecheck.NotFound("Inspection not found")
}

func (s *InspectionService) FindInspections(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error) {
	if s.FindInspectionsFn != nil {
		return s.FindInspectionsFn(ctx, filter)
	}
	return []*safecheck.Inspection{}, 0, nil
}

func (s *InspectionService) CreateInspection(ctx context.Context, inspection *safecheck.Inspection) error {
	if s.CreateInspectionFn != nil {
		return s.CreateInspectionFn(ctx, inspection)
	}
	inspection.ID = uuid.New()
	inspection.Status = safecheck.InspectionStatusInProgress
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()
	return nil
}

func (s *InspectionService) SaveInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	if s.SaveInspectionFn != nil {
		return s.SaveInspectionFn(ctx, id, upd)
	}
	return nil, safecheck.NotFound("Inspection not found")
}

func (s *InspectionService) SubmitInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	if s.SubmitInspectionFn != nil {
		return s.SubmitInspectionFn(ctx, id, upd)
	}
	return nil, safecheck.NotFound("Inspection not found")
}

func (s *InspectionService) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error) {
	if s.AppendPhotosFn != nil {
		return s.AppendPhotosFn(ctx, id, urls)
	}
	return nil, safecheck.NotFound("Inspection not found")
}

func (s *InspectionService) RemovePhoto(ctx context.Context, id uuid.UUID, url string) (*safecheck.Inspection, error) {
	if s.RemovePhotoFn != nil {
		return s.RemovePhotoFn(ctx, id, url)
	}
	return nil, safecheck.NotFound("Inspection not found")
}
