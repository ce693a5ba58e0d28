package postgres

import (
	"context"
	"errors"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface check
var _ safecheck.FacilityService = (*FacilityService)(nil)

// FacilityService is a PostgreSQL implementation of safecheck.FacilityService.
type FacilityService struct {
	db *DB
}

const facilityColumns = `id, name, type, address, manager_name, phone, created_at, updated_at`

func scanFacility(row pgx.Row) (*safecheck.Facility, error) {
	var f safecheck.Facility
	err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Address, &f.ManagerName, &f.Phone, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FacilityService) FindFacilityByID(ctx context.Context, id uuid.UUID) (*safecheck.Facility, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+facilityColumns+` FROM facilities WHERE id = $1`, id)

	facility, err := scanFacility(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Facility not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find facility", err)
	}
	return facility, nil
}

func (s *FacilityService) FindFacilities(ctx context.Context, filter safecheck.FacilityFilter) ([]*safecheck.Facility, int, error) {
	where, args := buildWhere(map[string]any{
		"id":   ptrArg(filter.ID),
		"type": ptrArg((*string)(filter.Type)),
	})

	var total int
	if err := s.db.pool.QueryRow(ctx, `SELECT count(*) FROM facilities`+where, args...).Scan(&total); err != nil {
		return nil, 0, safecheck.Internal("Failed to count facilities", err)
	}

	query := `SELECT ` + facilityColumns + ` FROM facilities` + where +
		` ORDER BY created_at DESC` + limitOffset(filter.Limit, filter.Offset)
	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, safecheck.Internal("Failed to list facilities", err)
	}
	defer rows.Close()

	facilities := []*safecheck.Facility{}
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, 0, safecheck.Internal("Failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, safecheck.Internal("Failed to list facilities", err)
	}
	return facilities, total, nil
}

func (s *FacilityService) CreateFacility(ctx context.Context, facility *safecheck.Facility) error {
	if err := facility.Validate(); err != nil {
		return err
	}

	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO facilities (id, name, type, address, manager_name, phone)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		 RETURNING `+facilityColumns,
		facility.Name, facility.Type, facility.Address, facility.ManagerName, facility.Phone)

	created, err := scanFacility(row)
	if err != nil {
		return safecheck.Internal("Failed to create facility", err)
	}
	*facility = *created
	return nil
}

func (s *FacilityService) UpdateFacility(ctx context.Context, id uuid.UUID, upd safecheck.FacilityUpdate) (*safecheck.Facility, error) {
	if upd.Type != nil && !upd.Type.IsValid() {
		return nil, safecheck.Invalid("Invalid facility type %q", *upd.Type)
	}

	row := s.db.pool.QueryRow(ctx,
		`UPDATE facilities SET
		   name         = COALESCE($2, name),
		   type         = COALESCE($3, type),
		   address      = COALESCE($4, address),
		   manager_name = COALESCE($5, manager_name),
		   phone        = COALESCE($6, phone),
		   updated_at   = now()
		 WHERE id = $1
		 RETURNING `+facilityColumns,
		id, upd.Name, (*string)(upd.Type), upd.Address, upd.ManagerName, upd.Phone)

	facility, err := scanFacility(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Facility not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to update facility", err)
	}
	return facility, nil
}

func (s *FacilityService) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return safecheck.Conflict("Facility has inspections and cannot be deleted")
	} else if err != nil {
		return safecheck.Internal("Failed to delete facility", err)
	}
	if tag.RowsAffected() == 0 {
		return safecheck.NotFound("Facility not found")
	}
	return nil
}
