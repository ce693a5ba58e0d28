package mock

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.FacilityService = (*FacilityService)(nil)

// FacilityService is a mock implementation of safecheck.FacilityService.
type FacilityService struct {
	FindFacilityByIDFn func(ctx context.Context, id uuid.UUID) (*safecheck.Facility, error)
	FindFacilitiesFn   func(ctx context.Context, filter safecheck.FacilityFilter) ([]*safecheck.Facility, int, error)
	CreateFacilityFn   func(ctx context.Context, facility *safecheck.Facility) error
	UpdateFacilityFn   func(ctx context.Context, id uuid.UUID, upd safecheck.FacilityUpdate) (*safecheck.Facility, error)
	DeleteFacilityFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *FacilityService) FindFacilityByID(ctx context.Context, id uuid.UUID) (*safecheck.Facility, error) {
	if s.FindFacilityByIDFn != nil {
		return s.FindFacilityByIDFn(ctx, id)
	}
	return nil, safecheck.NotFound("Facility not found")
}

func (s *FacilityService) FindFacilities(ctx context.Context, filter safecheck.FacilityFilter) ([]*safecheck.Facility, int, error) {
	if s.FindFacilitiesFn != nil {
		return s.FindFacilitiesFn(ctx, filter)
	}
	return []*safecheck.Facility{}, 0, nil
}

func (s *FacilityService) CreateFacility(ctx context.Context, facility *safecheck.Facility) error {
	if s.CreateFacilityFn != nil {
		return s.CreateFacilityFn(ctx, facility)
	}
	facility.ID = uuid.New()
	facility.CreatedAt = time.Now()
	facility.UpdatedAt = time.Now()
	return nil
}

func (s *FacilityService) UpdateFacility(ctx context.Context, id uuid.UUID, upd safecheck.FacilityUpdate) (*safecheck.Facility, error) {
	if s.UpdateFacilityFn != nil {
		return s.UpdateFacilityFn(ctx, id, upd)
	}
	return nil, safecheck.NotFound("Facility not found")
}

func (s *FacilityService) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFacilityFn != nil {
		return s.DeleteFacilityFn(ctx, id)
	}
	return nil
}
