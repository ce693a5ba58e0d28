package safecheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Template is a reusable named checklist definition.
type Template struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Items       []CheckItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CheckItem is one checklist question with a declared answer kind.
// Item IDs are the join key between a template and inspection results.
type CheckItem struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Kind  ItemKind `json:"type"`
}

// ItemKind declares how a checklist item is answered.
type ItemKind string

const (
	ItemKindCheckbox ItemKind = "checkbox"
	ItemKindText     ItemKind = "text"
	ItemKindNumber   ItemKind = "number"
)

// IsValid returns true if the item kind is a recognized value.
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindCheckbox, ItemKindText, ItemKindNumber:
		return true
	}
	return false
}

// Validate checks the template's required fields and that item IDs are
// unique within the template.
func (t *Template) Validate() error {
	fields := make(map[string]string)
	if t.Name == "" {
		fields["name"] = "is required"
	}
	if msg := validateItems(t.Items); msg != "" {
		fields["items"] = msg
	}
	if len(fields) > 0 {
		return ErrorWithFields(fields)
	}
	return nil
}

// ValidateItems checks a checklist item list on its own, for partial updates
// that replace only the items.
func ValidateItems(items []CheckItem) error {
	if msg := validateItems(items); msg != "" {
		return ErrorWithFields(map[string]string{"items": msg})
	}
	return nil
}

func validateItems(items []CheckItem) string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" {
			return "every item needs an id"
		}
		if seen[item.ID] {
			return "item ids must be unique within a template"
		}
		seen[item.ID] = true
		if !item.Kind.IsValid() {
			return "item type must be one of: checkbox, text, number"
		}
	}
	return ""
}

// ItemByID returns the item with the given ID, or false if absent.
func (t *Template) ItemByID(id string) (CheckItem, bool) {
	for _, item := range t.Items {
		if item.ID == id {
			return item, true
		}
	}
	return CheckItem{}, false
}

// TemplateService defines operations for managing checklist templates.
type TemplateService interface {
	// FindTemplateByID retrieves a template by its ID.
	// Returns ENOTFOUND if the template does not exist.
	FindTemplateByID(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindTemplates retrieves templates matching the filter criteria,
	// ordered by creation time descending. Returns the matching templates
	// and total count.
	FindTemplates(ctx context.Context, filter TemplateFilter) ([]*Template, int, error)

	// CreateTemplate creates a new template.
	// Returns EINVALID if item IDs are not unique.
	CreateTemplate(ctx context.Context, template *Template) error

	// UpdateTemplate updates an existing template. Edits do not alter the
	// item snapshots held by already-created inspections.
	// Returns ENOTFOUND if the template does not exist.
	UpdateTemplate(ctx context.Context, id uuid.UUID, upd TemplateUpdate) (*Template, error)

	// DeleteTemplate deletes a template. Inspections keep rendering from
	// their own item snapshots.
	// Returns ENOTFOUND if the template does not exist.
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

// TemplateFilter defines criteria for filtering templates.
type TemplateFilter struct {
	ID *uuid.UUID

	// Pagination
	Offset int
	Limit  int
}

// TemplateUpdate defines fields that can be updated on a template.
// Pointer fields: nil = don't update, non-nil = update to this value.
type TemplateUpdate struct {
	Name        *string
	Description *string
	Items       *[]CheckItem
}
