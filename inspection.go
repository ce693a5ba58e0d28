package safecheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Inspection is one inspector's run of a template against a facility on a
// given date. FacilityName, TemplateName, and Items are denormalized
// snapshots taken at creation, so later template edits or deletions never
// change what an existing inspection reports.
type Inspection struct {
	ID          uuid.UUID `json:"id"`
	FacilityID  uuid.UUID `json:"facilityId"`
	TemplateID  uuid.UUID `json:"templateId"`
	InspectorID uuid.UUID `json:"inspectorId"`

	InspectorName string `json:"inspectorName"`
	FacilityName  string `json:"facilityName"`
	TemplateName  string `json:"templateName"`

	// Items is the checklist snapshot answered against.
	Items []CheckItem `json:"items"`

	// Date is the inspection calendar date as a locale-formatted string.
	Date string `json:"date"`

	Status  InspectionStatus   `json:"status"`
	Results []InspectionResult `json:"results"`
	Photos  []string           `json:"photos"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InspectionStatus represents the status of an inspection.
type InspectionStatus string

const (
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusSubmitted  InspectionStatus = "submitted"
)

// IsEditable returns true if the inspection can still be modified.
func (s InspectionStatus) IsEditable() bool {
	return s == InspectionStatusInProgress
}

// CanTransitionTo returns true if this status can transition to the target
// status. The only legal transition is in_progress to submitted; submitted
// is terminal.
func (s InspectionStatus) CanTransitionTo(target InspectionStatus) bool {
	return s == InspectionStatusInProgress && target == InspectionStatusSubmitted
}

// CanEdit returns true if the given user may mutate this inspection: the
// owning inspector, while the record is still in progress. Admins may read
// and export submitted inspections but never edit them.
func (i *Inspection) CanEdit(user *User) bool {
	if user == nil || !i.Status.IsEditable() {
		return false
	}
	return user.ID == i.InspectorID
}

// SetAnswer records an answer for one checklist item, replacing any earlier
// answer for the same item ID. Returns EINVALID if the value's kind does not
// match the item's declared kind, or Finalized if the inspection is no
// longer editable.
func (i *Inspection) SetAnswer(item CheckItem, value AnswerValue) error {
	if !i.Status.IsEditable() {
		return Finalized()
	}
	if value.Kind() != item.Kind {
		return Invalid("item %q expects a %s answer, got %s", item.ID, item.Kind, value.Kind())
	}
	i.Results = MergeResults(i.Results, []InspectionResult{{ItemID: item.ID, Value: value}})
	return nil
}

// AnsweredCount counts answered items against the snapshot item list.
func (i *Inspection) AnsweredCount() int {
	return AnsweredCount(i.Items, i.Results)
}

// ProgressRatio returns the answered fraction in [0,1].
func (i *Inspection) ProgressRatio() float64 {
	return ProgressRatio(i.Items, i.Results)
}

// InspectionService defines the inspection lifecycle operations. Both the
// postgres and memory implementations re-validate the persisted status at
// the point of mutation, so a stale in-memory in_progress view of a
// since-submitted record is still rejected.
type InspectionService interface {
	// FindInspectionByID retrieves an inspection by its ID.
	// Returns ENOTFOUND if the inspection does not exist.
	FindInspectionByID(ctx context.Context, id uuid.UUID) (*Inspection, error)

	// FindInspections retrieves inspections matching the filter criteria,
	// ordered by creation time descending. Returns the matching
	// inspections and total count.
	FindInspections(ctx context.Context, filter InspectionFilter) ([]*Inspection, int, error)

	// CreateInspection creates a new inspection in the in_progress state
	// with empty results and photos.
	CreateInspection(ctx context.Context, inspection *Inspection) error

	// SaveInspection merges a partial update of results and/or photos into
	// an in-progress inspection without changing its status.
	// Returns ENOTFOUND if the inspection does not exist.
	// Returns the Finalized error if the inspection has been submitted.
	SaveInspection(ctx context.Context, id uuid.UUID, upd InspectionUpdate) (*Inspection, error)

	// SubmitInspection atomically persists the given results/photos
	// snapshot with the irreversible in_progress to submitted transition.
	// Returns ENOTFOUND if the inspection does not exist.
	// Returns the Finalized error if it was already submitted.
	SubmitInspection(ctx context.Context, id uuid.UUID, upd InspectionUpdate) (*Inspection, error)

	// AppendPhotos appends photo URLs, preserving the given order, and
	// persists the updated sequence immediately.
	// Returns the Finalized error if the inspection has been submitted.
	AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) (*Inspection, error)

	// RemovePhoto removes exactly one matching entry from the photo
	// sequence; it is a no-op if the URL is not present.
	// Returns the Finalized error if the inspection has been submitted.
	RemovePhoto(ctx context.Context, id uuid.UUID, url string) (*Inspection, error)
}

// InspectionFilter defines criteria for filtering inspections.
type InspectionFilter struct {
	ID          *uuid.UUID
	FacilityID  *uuid.UUID
	InspectorID *uuid.UUID
	Status      *InspectionStatus

	// Pagination
	Offset int
	Limit  int
}

// InspectionUpdate defines the merge-semantics partial update applied by
// SaveInspection and SubmitInspection. Pointer fields: nil = leave the
// stored value untouched, non-nil = replace it. Incoming results are merged
// per item ID with the last write winning.
type InspectionUpdate struct {
	Results *[]InspectionResult
	Photos  *[]string
}
