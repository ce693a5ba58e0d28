package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
)

func inspectionFixture(inspector *safecheck.User) *safecheck.Inspection {
	return &safecheck.Inspection{
		ID:            uuid.New(),
		FacilityID:    uuid.New(),
		TemplateID:    uuid.New(),
		InspectorID:   inspector.ID,
		InspectorName: inspector.DisplayName,
		FacilityName:  "Riverside Elementary",
		TemplateName:  "Monthly Fire Safety",
		Items: []safecheck.CheckItem{
			{ID: "ext", Title: "Fire extinguishers charged", Kind: safecheck.ItemKindCheckbox},
			{ID: "notes", Title: "Notes", Kind: safecheck.ItemKindText},
		},
		Date:      "8/30/2026",
		Status:    safecheck.InspectionStatusInProgress,
		Results:   []safecheck.InspectionResult{},
		Photos:    []string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestCreateInspectionSnapshotsNames(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	facility := &safecheck.Facility{ID: uuid.New(), Name: "Riverside Elementary", Type: safecheck.FacilityTypeSchool}
	template := &safecheck.Template{
		ID:   uuid.New(),
		Name: "Monthly Fire Safety",
		Items: []safecheck.CheckItem{
			{ID: "ext", Title: "Fire extinguishers charged", Kind: safecheck.ItemKindCheckbox},
		},
	}

	ts.FacilityService.FindFacilityByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Facility, error) {
		require.Equal(t, facility.ID, id)
		return facility, nil
	}
	ts.TemplateService.FindTemplateByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Template, error) {
		require.Equal(t, template.ID, id)
		return template, nil
	}

	var created *safecheck.Inspection
	ts.InspectionService.CreateInspectionFn = func(ctx context.Context, inspection *safecheck.Inspection) error {
		inspection.ID = uuid.New()
		created = inspection
		return nil
	}

	body := fmt.Sprintf(`{"facilityId":%q,"templateId":%q,"date":"8/30/2026"}`, facility.ID, template.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/inspections", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "Riverside Elementary", created.FacilityName)
	assert.Equal(t, "Monthly Fire Safety", created.TemplateName)
	assert.Equal(t, user.ID, created.InspectorID)
	assert.Equal(t, user.DisplayName, created.InspectorName)
	assert.Len(t, created.Items, 1)
}

func TestListInspectionsScopedToInspector(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	var gotFilter safecheck.InspectionFilter
	ts.InspectionService.FindInspectionsFn = func(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error) {
		gotFilter = filter
		return []*safecheck.Inspection{inspectionFixture(user)}, 1, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inspections", nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.InspectorID)
	assert.Equal(t, user.ID, *gotFilter.InspectorID)
}

func TestListInspectionsAdminSeesAll(t *testing.T) {
	ts := newTestServer()
	admin := testAdmin()
	ts.loginAs(admin)

	var gotFilter safecheck.InspectionFilter
	ts.InspectionService.FindInspectionsFn = func(ctx context.Context, filter safecheck.InspectionFilter) ([]*safecheck.Inspection, int, error) {
		gotFilter = filter
		return nil, 0, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inspections?status=submitted", nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotFilter.InspectorID)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, safecheck.InspectionStatusSubmitted, *gotFilter.Status)
}

func TestGetInspectionHiddenFromOtherInspectors(t *testing.T) {
	ts := newTestServer()
	owner := testInspector()
	other := testInspector()
	ts.loginAs(other)

	inspection := inspectionFixture(owner)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inspections/"+inspection.ID.String(), nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveInspection(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	var gotUpd safecheck.InspectionUpdate
	ts.InspectionService.SaveInspectionFn = func(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
		gotUpd = upd
		return inspection, nil
	}

	body := `{"results":[{"itemId":"ext","value":true},{"itemId":"notes","value":"all good"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/inspections/"+inspection.ID.String(), strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUpd.Results)
	require.Len(t, *gotUpd.Results, 2)

	v, ok := (*gotUpd.Results)[0].Value.Bool()
	require.True(t, ok)
	assert.True(t, v)

	text, ok := (*gotUpd.Results)[1].Value.Text()
	require.True(t, ok)
	assert.Equal(t, "all good", text)
	assert.Nil(t, gotUpd.Photos)
}

func TestSaveSubmittedInspectionRejected(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	inspection.Status = safecheck.InspectionStatusSubmitted
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	req := httptest.NewRequest(http.MethodPut, "/api/inspections/"+inspection.ID.String(), strings.NewReader(`{}`))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "finalized")
}

func TestAdminCannotEditOthersInspection(t *testing.T) {
	ts := newTestServer()
	owner := testInspector()
	admin := testAdmin()
	ts.loginAs(admin)

	inspection := inspectionFixture(owner)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	req := httptest.NewRequest(http.MethodPut, "/api/inspections/"+inspection.ID.String(), strings.NewReader(`{}`))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitInspectionNotifiesAdmins(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	admin := testAdmin()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}
	ts.InspectionService.SubmitInspectionFn = func(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
		submitted := *inspection
		submitted.Status = safecheck.InspectionStatusSubmitted
		return &submitted, nil
	}
	ts.UserService.FindUsersFn = func(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error) {
		require.NotNil(t, filter.Role)
		require.Equal(t, safecheck.RoleAdmin, *filter.Role)
		return []*safecheck.User{admin}, 1, nil
	}

	var notified []string
	ts.EmailService.SendInspectionSubmittedFn = func(ctx context.Context, to []string, inspection *safecheck.Inspection) error {
		notified = to
		return nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+inspection.ID.String()+"/submit", strings.NewReader(`{}`))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{admin.Email}, notified)

	var got safecheck.Inspection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, safecheck.InspectionStatusSubmitted, got.Status)
}

func TestSubmitInspectionEmailFailureIsNonFatal(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}
	ts.InspectionService.SubmitInspectionFn = func(ctx context.Context, id uuid.UUID, upd safecheck.InspectionUpdate) (*safecheck.Inspection, error) {
		submitted := *inspection
		submitted.Status = safecheck.InspectionStatusSubmitted
		return &submitted, nil
	}
	ts.UserService.FindUsersFn = func(ctx context.Context, filter safecheck.UserFilter) ([]*safecheck.User, int, error) {
		return []*safecheck.User{testAdmin()}, 1, nil
	}
	ts.EmailService.SendInspectionSubmittedFn = func(ctx context.Context, to []string, inspection *safecheck.Inspection) error {
		return safecheck.Internal("smtp down", nil)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+inspection.ID.String()+"/submit", strings.NewReader(`{}`))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInspectionReport(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}
	ts.ReportGenerator.GenerateFn = func(ctx context.Context, insp *safecheck.Inspection, items []safecheck.CheckItem) ([]byte, error) {
		require.Equal(t, inspection.ID, insp.ID)
		return []byte("%PDF-1.4 report"), nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inspections/"+inspection.ID.String()+"/report", nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inspection_Riverside_Elementary")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}
