package memory

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time check that FacilityService implements safecheck.FacilityService.
var _ safecheck.FacilityService = (*FacilityService)(nil)

// FacilityService implements safecheck.FacilityService in memory.
type FacilityService struct {
	store *Store
}

func (s *FacilityService) FindFacilityByID(ctx context.Context, id uuid.UUID) (*safecheck.Facility, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rec, ok := s.store.facilities[id]
	if !ok {
		return nil, safecheck.NotFound("Facility not found")
	}
	facility := rec.facility
	return &facility, nil
}

func (s *FacilityService) FindFacilities(ctx context.Context, filter safecheck.FacilityFilter) ([]*safecheck.Facility, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var recs []*facilityRecord
	for _, rec := range s.store.facilities {
		if filter.ID != nil && rec.facility.ID != *filter.ID {
			continue
		}
		if filter.Type != nil && rec.facility.Type != *filter.Type {
			continue
		}
		recs = append(recs, rec)
	}

	sortByCreatedDesc(recs, func(r *facilityRecord) (createdAt time.Time, seq int64) {
		return r.facility.CreatedAt, r.seq
	})

	total := len(recs)
	recs = paginate(recs, filter.Offset, filter.Limit)

	facilities := make([]*safecheck.Facility, 0, len(recs))
	for _, rec := range recs {
		facility := rec.facility
		facilities = append(facilities, &facility)
	}
	return facilities, total, nil
}

func (s *FacilityService) CreateFacility(ctx context.Context, facility *safecheck.Facility) error {
	if err := facility.Validate(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()
	facility.ID = uuid.New()
	facility.CreatedAt = now
	facility.UpdatedAt = now
	s.store.facilities[facility.ID] = &facilityRecord{facility: *facility, seq: s.store.nextSeq()}
	return nil
}

func (s *FacilityService) UpdateFacility(ctx context.Context, id uuid.UUID, upd safecheck.FacilityUpdate) (*safecheck.Facility, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, ok := s.store.facilities[id]
	if !ok {
		return nil, safecheck.NotFound("Facility not found")
	}

	if upd.Name != nil {
		rec.facility.Name = *upd.Name
	}
	if upd.Type != nil {
		if !upd.Type.IsValid() {
			return nil, safecheck.Invalid("Invalid facility type %q", *upd.Type)
		}
		rec.facility.Type = *upd.Type
	}
	if upd.Address != nil {
		rec.facility.Address = *upd.Address
	}
	if upd.ManagerName != nil {
		rec.facility.ManagerName = *upd.ManagerName
	}
	if upd.Phone != nil {
		rec.facility.Phone = *upd.Phone
	}
	rec.facility.UpdatedAt = s.store.now()

	facility := rec.facility
	return &facility, nil
}

func (s *FacilityService) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.facilities[id]; !ok {
		return safecheck.NotFound("Facility not found")
	}
	delete(s.store.facilities, id)
	return nil
}
