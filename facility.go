package safecheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Facility represents a physical site subject to inspection.
type Facility struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Type        FacilityType `json:"type"`
	Address     string       `json:"address"`
	ManagerName string       `json:"managerName"`
	Phone       string       `json:"phone"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// FacilityType classifies the kind of site being inspected.
type FacilityType string

const (
	FacilityTypeSchool           FacilityType = "school"
	FacilityTypePublicFacility   FacilityType = "public_facility"
	FacilityTypeConstructionSite FacilityType = "construction_site"
)

// IsValid returns true if the facility type is a recognized value.
func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityTypeSchool, FacilityTypePublicFacility, FacilityTypeConstructionSite:
		return true
	}
	return false
}

// Validate checks the facility's required fields.
func (f *Facility) Validate() error {
	fields := make(map[string]string)
	if f.Name == "" {
		fields["name"] = "is required"
	}
	if !f.Type.IsValid() {
		fields["type"] = "must be one of: school, public_facility, construction_site"
	}
	if len(fields) > 0 {
		return ErrorWithFields(fields)
	}
	return nil
}

// FacilityService defines operations for managing facilities.
type FacilityService interface {
	// FindFacilityByID retrieves a facility by its ID.
	// Returns ENOTFOUND if the facility does not exist.
	FindFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error)

	// FindFacilities retrieves facilities matching the filter criteria,
	// ordered by creation time descending. Returns the matching facilities
	// and total count.
	FindFacilities(ctx context.Context, filter FacilityFilter) ([]*Facility, int, error)

	// CreateFacility creates a new facility.
	CreateFacility(ctx context.Context, facility *Facility) error

	// UpdateFacility updates the descriptive fields of a facility.
	// Returns ENOTFOUND if the facility does not exist.
	UpdateFacility(ctx context.Context, id uuid.UUID, upd FacilityUpdate) (*Facility, error)

	// DeleteFacility deletes a facility.
	// Returns ENOTFOUND if the facility does not exist.
	DeleteFacility(ctx context.Context, id uuid.UUID) error
}

// FacilityFilter defines criteria for filtering facilities.
type FacilityFilter struct {
	ID   *uuid.UUID
	Type *FacilityType

	// Pagination
	Offset int
	Limit  int
}

// FacilityUpdate defines fields that can be updated on a facility.
// Pointer fields: nil = don't update, non-nil = update to this value.
// Identity (ID, CreatedAt) is immutable.
type FacilityUpdate struct {
	Name        *string
	Type        *FacilityType
	Address     *string
	ManagerName *string
	Phone       *string
}
