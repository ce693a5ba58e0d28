package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/memory"
)

func newTestInspection(inspectorID uuid.UUID) *safecheck.Inspection {
	return &safecheck.Inspection{
		FacilityID:    uuid.New(),
		TemplateID:    uuid.New(),
		InspectorID:   inspectorID,
		InspectorName: "Kim Inspector",
		FacilityName:  "Riverside Elementary",
		TemplateName:  "Monthly Fire Safety",
		Items: []safecheck.CheckItem{
			{ID: "extinguisher", Title: "Fire extinguisher charged", Kind: safecheck.ItemKindCheckbox},
			{ID: "exit-signs", Title: "Exit signs lit", Kind: safecheck.ItemKindCheckbox},
			{ID: "notes", Title: "Additional notes", Kind: safecheck.ItemKindText},
		},
		Date: "2026-08-30",
	}
}

func TestInspectionLifecycle(t *testing.T) {
	store := memory.NewStore()
	svc := store.InspectionService
	ctx := context.Background()

	inspection := newTestInspection(uuid.New())
	require.NoError(t, svc.CreateInspection(ctx, inspection))
	require.NotEqual(t, uuid.Nil, inspection.ID)
	assert.Equal(t, safecheck.InspectionStatusInProgress, inspection.Status)
	assert.NotNil(t, inspection.Results)
	assert.NotNil(t, inspection.Photos)

	// Save a partial update; status must not change.
	results := []safecheck.InspectionResult{
		{ItemID: "extinguisher", Value: safecheck.BoolAnswer(true)},
	}
	saved, err := svc.SaveInspection(ctx, inspection.ID, safecheck.InspectionUpdate{Results: &results})
	require.NoError(t, err)
	assert.Equal(t, safecheck.InspectionStatusInProgress, saved.Status)
	require.Len(t, saved.Results, 1)

	// A second save merges per item ID, last write wins.
	results = []safecheck.InspectionResult{
		{ItemID: "extinguisher", Value: safecheck.BoolAnswer(false)},
		{ItemID: "notes", Value: safecheck.TextAnswer("hose cracked")},
	}
	saved, err = svc.SaveInspection(ctx, inspection.ID, safecheck.InspectionUpdate{Results: &results})
	require.NoError(t, err)
	require.Len(t, saved.Results, 2)
	assert.Equal(t, "extinguisher", saved.Results[0].ItemID)
	passed, ok := saved.Results[0].Value.Bool()
	require.True(t, ok)
	assert.False(t, passed)

	// Submit with a final snapshot.
	final := []safecheck.InspectionResult{
		{ItemID: "exit-signs", Value: safecheck.BoolAnswer(true)},
	}
	submitted, err := svc.SubmitInspection(ctx, inspection.ID, safecheck.InspectionUpdate{Results: &final})
	require.NoError(t, err)
	assert.Equal(t, safecheck.InspectionStatusSubmitted, submitted.Status)
	assert.Len(t, submitted.Results, 3)

	// Submitted is terminal; a second submit and any save are rejected.
	_, err = svc.SubmitInspection(ctx, inspection.ID, safecheck.InspectionUpdate{})
	require.Error(t, err)
	assert.True(t, safecheck.IsFinalized(err))

	_, err = svc.SaveInspection(ctx, inspection.ID, safecheck.InspectionUpdate{Results: &final})
	require.Error(t, err)
	assert.True(t, safecheck.IsFinalized(err))
}

func TestInspectionNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := store.InspectionService
	ctx := context.Background()

	_, err := svc.FindInspectionByID(ctx, uuid.New())
	assert.Equal(t, safecheck.ENOTFOUND, safecheck.ErrorCode(err))

	_, err = svc.SaveInspection(ctx, uuid.New(), safecheck.InspectionUpdate{})
	assert.Equal(t, safecheck.ENOTFOUND, safecheck.ErrorCode(err))
}

func TestInspectionPhotos(t *testing.T) {
	store := memory.NewStore()
	svc := store.InspectionService
	ctx := context.Background()

	inspection := newTestInspection(uuid.New())
	require.NoError(t, svc.CreateInspection(ctx, inspection))

	updated, err := svc.AppendPhotos(ctx, inspection.ID, []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg"})
	require.NoError(t, err)
	updated, err = svc.AppendPhotos(ctx, inspection.ID, []string{"https://cdn/p3.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg", "https://cdn/p3.jpg"}, updated.Photos)

	updated, err = svc.RemovePhoto(ctx, inspection.ID, "https://cdn/p2.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/p1.jpg", "https://cdn/p3.jpg"}, updated.Photos)

	// Removing an absent URL is a no-op.
	updated, err = svc.RemovePhoto(ctx, inspection.ID, "https://cdn/missing.jpg")
	require.NoError(t, err)
	assert.Len(t, updated.Photos, 2)

	_, err = svc.SubmitInspection(ctx, inspection.ID, safecheck.InspectionUpdate{})
	require.NoError(t, err)

	_, err = svc.AppendPhotos(ctx, inspection.ID, []string{"https://cdn/late.jpg"})
	assert.True(t, safecheck.IsFinalized(err))
	_, err = svc.RemovePhoto(ctx, inspection.ID, "https://cdn/p1.jpg")
	assert.True(t, safecheck.IsFinalized(err))
}

func TestFindInspectionsOrderAndFilter(t *testing.T) {
	store := memory.NewStore()
	svc := store.InspectionService
	ctx := context.Background()

	clock := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store.SetNowFunc(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	inspectorA := uuid.New()
	inspectorB := uuid.New()

	first := newTestInspection(inspectorA)
	second := newTestInspection(inspectorB)
	third := newTestInspection(inspectorA)
	require.NoError(t, svc.CreateInspection(ctx, first))
	require.NoError(t, svc.CreateInspection(ctx, second))
	require.NoError(t, svc.CreateInspection(ctx, third))

	_, err := svc.SubmitInspection(ctx, second.ID, safecheck.InspectionUpdate{})
	require.NoError(t, err)

	// Newest first.
	all, total, err := svc.FindInspections(ctx, safecheck.InspectionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	// By inspector.
	mine, total, err := svc.FindInspections(ctx, safecheck.InspectionFilter{InspectorID: &inspectorA})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, mine, 2)

	// By status.
	status := safecheck.InspectionStatusSubmitted
	done, total, err := svc.FindInspections(ctx, safecheck.InspectionFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, done, 1)
	assert.Equal(t, second.ID, done[0].ID)

	// Pagination still reports the unpaged total.
	page, total, err := svc.FindInspections(ctx, safecheck.InspectionFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)
}

func TestFindInspectionReturnsCopy(t *testing.T) {
	store := memory.NewStore()
	svc := store.InspectionService
	ctx := context.Background()

	inspection := newTestInspection(uuid.New())
	require.NoError(t, svc.CreateInspection(ctx, inspection))

	got, err := svc.FindInspectionByID(ctx, inspection.ID)
	require.NoError(t, err)
	got.Photos = append(got.Photos, "https://cdn/sneaky.jpg")
	got.Items[0].Title = "tampered"

	fresh, err := svc.FindInspectionByID(ctx, inspection.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Photos)
	assert.Equal(t, "Fire extinguisher charged", fresh.Items[0].Title)
}
