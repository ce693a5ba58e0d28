package postgres

import (
	"context"
	"errors"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface check
var _ safecheck.InspectionService = (*InspectionService)(nil)

// InspectionService is a PostgreSQL implementation of
// safecheck.InspectionService. Mutations lock the row and re-check the
// persisted status inside the transaction, so a caller holding a stale
// in_progress view of a since-submitted record is rejected.
type InspectionService struct {
	db *DB
}

const inspectionColumns = `id, facility_id, template_id, inspector_id,
	facility_name, template_name, inspector_name,
	items, date, status, results, photos, created_at, updated_at`

func scanInspection(row pgx.Row) (*safecheck.Inspection, error) {
	var i safecheck.Inspection
	var items, results, photos []byte
	err := row.Scan(
		&i.ID, &i.FacilityID, &i.TemplateID, &i.InspectorID,
		&i.FacilityName, &i.TemplateName, &i.InspectorName,
		&items, &i.Date, &i.Status, &results, &photos, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if i.Items, err = itemsFromJSONB(items); err != nil {
		return nil, err
	}
	if i.Results, err = resultsFromJSONB(results); err != nil {
		return nil, err
	}
	if i.Photos, err = photosFromJSONB(photos); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`, id)

	inspection, err := scanInspection(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Inspection not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find inspection", err)
	}
	return inspection, nil
}

func (s *InspectionService) FindInspections(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error) {
	where, args := buildWhere(map[string]any{
		"id":           ptrArg(filter.ID),
		"facility_id":  ptrArg(filter.FacilityID),
		"inspector_id": ptrArg(filter.InspectorID),
		"status":       ptrArg((*string)(filter.Status)),
	})

	var total int
	if err := s.db.pool.QueryRow(ctx, `SELECT count(*) FROM inspections`+where, args...).Scan(&total); err != nil {
		return nil, 0, safecheck.Internal("Failed to count inspections", err)
	}

	query := `SELECT ` + inspectionColumns + ` FROM inspections` + where +
		` ORDER BY created_at DESC` + limitOffset(filter.Limit, filter.Offset)
	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, safecheck.Internal("Failed to list inspections", err)
	}
	defer rows.Close()

	inspections := []*safecheck.Inspection{}
	for rows.Next() {
		inspection, err := scanInspection(rows)
		if err != nil {
			return nil, 0, safecheck.Internal("Failed to scan inspection", err)
		}
		inspections = append(inspections, inspection)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, safecheck.Internal("Failed to list inspections", err)
	}
	return inspections, total, nil
}

func (s *InspectionService) CreateInspection(ctx context.Context, inspection *safecheck.Inspection) error {
	items, err := toJSONB(inspection.Items)
	if err != nil {
		return safecheck.Internal("Failed to encode checklist items", err)
	}

	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO inspections
		   (id, facility_id, template_id, inspector_id,
		    facility_name, template_name, inspector_name,
		    items, date, status, results, photos)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, 'in_progress', '[]', '[]')
		 RETURNING `+inspectionColumns,
		inspection.FacilityID, inspection.TemplateID, inspection.InspectorID,
		inspection.FacilityName, inspection.TemplateName, inspection.InspectorName,
		items, inspection.Date)

	created, err := scanInspection(row)
	if isForeignKeyViolation(err) {
		return safecheck.Invalid("Facility, template, or inspector does not exist")
	} else if err != nil {
		return safecheck.Internal("Failed to create inspection", err)
	}
	*inspection = *created
	return nil
}

func (s *InspectionService) SaveInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	return s.mutate(ctx, id, func(inspection *safecheck.Inspection) {
		applyUpdate(inspection, upd)
	})
}

func (s *InspectionService) SubmitInspection(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
	return s.mutate(ctx, id, func(inspection *safecheck.Inspection) {
		applyUpdate(inspection, upd)
		inspection.Status = safecheck.InspectionStatusSubmitted
	})
}

func (s *InspectionService) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error) {
	if len(urls) == 0 {
		return s.FindInspectionByID(ctx, id)
	}
	return s.mutate(ctx, id, func(inspection *safecheck.Inspection) {
		inspection.Photos = append(inspection.Photos, urls...)
	})
}

func (s *InspectionService) RemovePhoto(ctx context.Context, id uuid.UUID, url string) (*safecheck.Inspection, error) {
	return s.mutate(ctx, id, func(inspection *safecheck.Inspection) {
		for i, p := range inspection.Photos {
			if p == url {
				inspection.Photos = append(inspection.Photos[:i], inspection.Photos[i+1:]...)
				break
			}
		}
	})
}

// mutate runs apply against the row under a FOR UPDATE lock and persists the
// changed results, photos, and status in the same transaction. Only rows
// still in progress accept mutation; the row lock makes the final snapshot
// and the status flip atomic for submits.
func (s *InspectionService) mutate(ctx context.Context, id uuid.UUID, apply func(*safecheck.Inspection)) (*safecheck.Inspection, error) {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return nil, safecheck.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = $1 FOR UPDATE`, id)
	inspection, err := scanInspection(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Inspection not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find inspection", err)
	}
	if !inspection.Status.IsEditable() {
		return nil, safecheck.Finalized()
	}

	apply(inspection)

	results, err := toJSONB(inspection.Results)
	if err != nil {
		return nil, safecheck.Internal("Failed to encode results", err)
	}
	photos, err := toJSONB(inspection.Photos)
	if err != nil {
		return nil, safecheck.Internal("Failed to encode photos", err)
	}

	row = tx.QueryRow(ctx,
		`UPDATE inspections SET results = $2, photos = $3, status = $4, updated_at = now()
		 WHERE id = $1 AND status = 'in_progress'
		 RETURNING `+inspectionColumns,
		id, results, photos, inspection.Status)
	updated, err := scanInspection(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.Finalized()
	} else if err != nil {
		return nil, safecheck.Internal("Failed to update inspection", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, safecheck.Internal("Failed to commit transaction", err)
	}
	return updated, nil
}

func applyUpdate(inspection *safecheck.Inspection, upd safecheck.InspectionUpdate) {
	if upd.Results != nil {
		inspection.Results = safecheck.MergeResults(inspection.Results, *upd.Results)
	}
	if upd.Photos != nil {
		inspection.Photos = append([]string(nil), (*upd.Photos)...)
	}
}
