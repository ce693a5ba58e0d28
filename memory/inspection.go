package memory

import (
	"context"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time check that InspectionService implements safecheck.InspectionService.
var _ safecheck.InspectionService = (*InspectionService)(nil)

// InspectionService implements safecheck.InspectionService in memory. Every
// mutation re-reads the stored status under the write lock, so a caller
// holding a stale in_progress view of a since-submitted record is rejected
// the same way the postgres implementation rejects it.
type InspectionService struct {
	store *Store
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rec, ok := s.store.inspections[id]
	if !ok {
		return nil, safecheck.NotFound("Inspection not found")
	}
	return copyInspection(&rec.inspection), nil
}

func (s *InspectionService) FindInspections(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var recs []*inspectionRecord
	for _, rec := range s.store.inspections {
		if filter.ID != nil && rec.inspection.ID != *filter.ID {
			continue
		}
		if filter.FacilityID != nil && rec.inspection.FacilityID != *filter.FacilityID {
			continue
		}
		if filter.InspectorID != nil && rec.inspection.InspectorID != *filter.InspectorID {
			continue
		}
		if filter.Status != nil && rec.inspection.Status != *filter.Status {
			continue
		}
		recs = append(recs, rec)
	}

	sortByCreatedDesc(recs, func(r *inspectionRecord) (createdAt time.Time, seq int64) {
		return r.inspection.CreatedAt, r.seq
	})

	total := len(recs)
	recs = paginate(recs, filter.Offset, filter.Limit)

	inspections := make([]*safecheck.Inspection, 0, len(recs))
	for _, rec := range recs {
		inspections = append(inspections, copyInspection(&rec.inspection))
	}
	return inspections, total, nil
}

func (s *InspectionService) CreateInspection(ctx context.Context, inspection *safecheck.Inspection) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()
	inspection.ID = uuid.New()
	inspection.Status = safecheck.InspectionStatusInProgress
	if inspection.Results == nil {
		inspection.Results = []safecheck.InspectionResult{}
	}
	if inspection.Photos == nil {
		inspection.Photos = []string{}
	}
	inspection.CreatedAt = now
	inspection.UpdatedAt = now

	s.store.inspections[inspection.ID] = &inspectionRecord{
		inspection: *copyInspection(inspection),
		seq:        s.store.nextSeq(),
	}
	return nil
}

func (s *InspectionService) SaveInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, err := s.editableRecord(id)
	if err != nil {
		return nil, err
	}

	applyUpdate(&rec.inspection, upd)
	rec.inspection.UpdatedAt = s.store.now()
	return copyInspection(&rec.inspection), nil
}

func (s *InspectionService) SubmitInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, err := s.editableRecord(id)
	if err != nil {
		return nil, err
	}

	// Final snapshot and status flip happen under the same lock, so the
	// transition is atomic with the persisted results/photos.
	applyUpdate(&rec.inspection, upd)
	rec.inspection.Status = safecheck.InspectionStatusSubmitted
	rec.inspection.UpdatedAt = s.store.now()
	return copyInspection(&rec.inspection), nil
}

func (s *InspectionService) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error) {
	if len(urls) == 0 {
		return s.FindInspectionByID(ctx, id)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, err := s.editableRecord(id)
	if err != nil {
		return nil, err
	}

	rec.inspection.Photos = append(rec.inspection.Photos, urls...)
	rec.inspection.UpdatedAt = s.store.now()
	return copyInspection(&rec.inspection), nil
}

func (s *InspectionService) RemovePhoto(ctx context.Context, id uuid.UUID, url string) (*safecheck.Inspection, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rec, err := s.editableRecord(id)
	if err != nil {
		return nil, err
	}

	for i, p := range rec.inspection.Photos {
		if p == url {
			rec.inspection.Photos = append(rec.inspection.Photos[:i], rec.inspection.Photos[i+1:]...)
			rec.inspection.UpdatedAt = s.store.now()
			break
		}
	}
	return copyInspection(&rec.inspection), nil
}

// editableRecord must be called with the write lock held. It returns the
// stored record only if it still accepts mutation.
func (s *InspectionService) editableRecord(id uuid.UUID) (*inspectionRecord, error) {
	rec, ok := s.store.inspections[id]
	if !ok {
		return nil, safecheck.NotFound("Inspection not found")
	}
	if !rec.inspection.Status.IsEditable() {
		return nil, safecheck.Finalized()
	}
	return rec, nil
}

func applyUpdate(inspection *safecheck.Inspection, upd safecheck.InspectionUpdate) {
	if upd.Results != nil {
		inspection.Results = safecheck.MergeResults(inspection.Results, *upd.Results)
	}
	if upd.Photos != nil {
		inspection.Photos = append([]string(nil), (*upd.Photos)...)
	}
}

func copyInspection(i *safecheck.Inspection) *safecheck.Inspection {
	dup := *i
	dup.Items = append([]safecheck.CheckItem(nil), i.Items...)
	dup.Results = append([]safecheck.InspectionResult(nil), i.Results...)
	dup.Photos = append([]string(nil), i.Photos...)
	return &dup
}
