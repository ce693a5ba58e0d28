package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// CreateInspectionRequest is the request payload for creating an inspection.
type CreateInspectionRequest struct {
	FacilityID string `json:"facilityId" validate:"required,uuid"`
	TemplateID string `json:"templateId" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,max=50"`
}

// SaveInspectionRequest carries a partial update of answers and photos.
// Absent fields leave the stored value untouched.
type SaveInspectionRequest struct {
	Results *[]safecheck.InspectionResult `json:"results"`
	Photos  *[]string                     `json:"photos"`
}

func (r SaveInspectionRequest) update() safecheck.InspectionUpdate {
	return safecheck.InspectionUpdate{Results: r.Results, Photos: r.Photos}
}

func (s *Server) handleCreateInspection(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req CreateInspectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	facilityID, err := parseUUID(req.FacilityID)
	if err != nil {
		return err
	}
	templateID, err := parseUUID(req.TemplateID)
	if err != nil {
		return err
	}

	facility, err := s.facilityService.FindFacilityByID(ctx, facilityID)
	if err != nil {
		return err
	}
	template, err := s.templateService.FindTemplateByID(ctx, templateID)
	if err != nil {
		return err
	}

	// Snapshot the facility, template, and inspector names so the record
	// stays intact if any of them later change or disappear.
	inspection := &safecheck.Inspection{
		FacilityID:    facility.ID,
		TemplateID:    template.ID,
		InspectorID:   user.ID,
		InspectorName: user.DisplayName,
		FacilityName:  facility.Name,
		TemplateName:  template.Name,
		Items:         template.Items,
		Date:          req.Date,
	}
	if err := s.inspectionService.CreateInspection(ctx, inspection); err != nil {
		return err
	}

	s.log(c).Info("inspection created",
		slog.String("inspection_id", inspection.ID.String()),
		slog.String("facility", facility.Name))

	return RespondCreated(c, inspection)
}

func (s *Server) handleListInspections(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	offset, limit := pagination(c)
	filter := safecheck.InspectionFilter{Offset: offset, Limit: limit}

	if v := c.QueryParam("facility"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return err
		}
		filter.FacilityID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		status := safecheck.InspectionStatus(v)
		filter.Status = &status
	}

	// Inspectors only ever see their own inspections. Admins see everything
	// unless they explicitly scope to themselves.
	if !user.IsAdmin() || c.QueryParam("inspector") == "me" {
		filter.InspectorID = &user.ID
	}

	inspections, total, err := s.inspectionService.FindInspections(ctx, filter)
	if err != nil {
		return err
	}
	return RespondList(c, inspections, total, offset, limit)
}

// findVisibleInspection loads an inspection and enforces read access: the
// owning inspector or any admin.
func (s *Server) findVisibleInspection(c echo.Context) (*safecheck.Inspection, error) {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	inspection, err := s.inspectionService.FindInspectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && inspection.InspectorID != user.ID {
		return nil, safecheck.NotFound("Inspection not found")
	}
	return inspection, nil
}

// requireEditableInspection loads an inspection and enforces write access:
// only the owning inspector, and only while the record is in progress.
func (s *Server) requireEditableInspection(c echo.Context) (*safecheck.Inspection, error) {
	inspection, err := s.findVisibleInspection(c)
	if err != nil {
		return nil, err
	}

	user, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	if inspection.InspectorID != user.ID {
		return nil, safecheck.Forbidden("Only the assigned inspector can modify this inspection")
	}
	if !inspection.Status.IsEditable() {
		return nil, safecheck.Finalized()
	}
	return inspection, nil
}

func (s *Server) handleGetInspection(c echo.Context) error {
	inspection, err := s.findVisibleInspection(c)
	if err != nil {
		return err
	}
	return RespondOK(c, inspection)
}

func (s *Server) handleSaveInspection(c echo.Context) error {
	inspection, err := s.requireEditableInspection(c)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	var req SaveInspectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	saved, err := s.inspectionService.SaveInspection(ctx, inspection.ID, req.update())
	if err != nil {
		return err
	}
	return RespondOK(c, saved)
}

func (s *Server) handleSubmitInspection(c echo.Context) error {
	inspection, err := s.requireEditableInspection(c)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	var req SaveInspectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	submitted, err := s.inspectionService.SubmitInspection(ctx, inspection.ID, req.update())
	if err != nil {
		return err
	}

	s.log(c).Info("inspection submitted",
		slog.String("inspection_id", submitted.ID.String()),
		slog.String("facility", submitted.FacilityName))

	s.notifyAdmins(c, submitted)

	return RespondOK(c, submitted)
}

// notifyAdmins emails every admin about a submitted inspection. Delivery is
// best effort; failures are logged and never surface to the client.
func (s *Server) notifyAdmins(c echo.Context, inspection *safecheck.Inspection) {
	if s.emailService == nil {
		return
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	adminRole := safecheck.RoleAdmin
	admins, _, err := s.userService.FindUsers(ctx, safecheck.UserFilter{Role: &adminRole})
	if err != nil {
		s.log(c).Error("failed to load admin recipients", slog.String("error", err.Error()))
		return
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}
	if len(recipients) == 0 {
		return
	}

	if err := s.emailService.SendInspectionSubmitted(ctx, recipients, inspection); err != nil {
		s.log(c).Error("failed to send submission notification",
			slog.String("inspection_id", inspection.ID.String()),
			slog.String("error", err.Error()))
	}
}
