package http

import (
	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// CreateFacilityRequest is the request payload for creating a facility.
type CreateFacilityRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,oneof=school public_facility construction_site"`
	Address     string `json:"address" validate:"max=500"`
	ManagerName string `json:"managerName" validate:"max=100"`
	Phone       string `json:"phone" validate:"max=50"`
}

// UpdateFacilityRequest is the request payload for updating a facility.
// Absent fields leave the stored value untouched.
type UpdateFacilityRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Type        *string `json:"type" validate:"omitempty,oneof=school public_facility construction_site"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	ManagerName *string `json:"managerName" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
}

func (s *Server) handleListFacilities(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	filter := safecheck.FacilityFilter{Offset: offset, Limit: limit}
	if t := c.QueryParam("type"); t != "" {
		facilityType := safecheck.FacilityType(t)
		filter.Type = &facilityType
	}

	facilities, total, err := s.facilityService.FindFacilities(ctx, filter)
	if err != nil {
		return err
	}
	return RespondList(c, facilities, total, offset, limit)
}

func (s *Server) handleGetFacility(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	facility, err := s.facilityService.FindFacilityByID(ctx, id)
	if err != nil {
		return err
	}
	return RespondOK(c, facility)
}

func (s *Server) handleCreateFacility(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req CreateFacilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	facility := &safecheck.Facility{
		Name:        req.Name,
		Type:        safecheck.FacilityType(req.Type),
		Address:     req.Address,
		ManagerName: req.ManagerName,
		Phone:       req.Phone,
	}
	if err := s.facilityService.CreateFacility(ctx, facility); err != nil {
		return err
	}
	return RespondCreated(c, facility)
}

func (s *Server) handleUpdateFacility(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateFacilityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	facility, err := s.facilityService.UpdateFacility(ctx, id, safecheck.FacilityUpdate{
		Name:        req.Name,
		Type:        (*safecheck.FacilityType)(req.Type),
		Address:     req.Address,
		ManagerName: req.ManagerName,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}
	return RespondOK(c, facility)
}

func (s *Server) handleDeleteFacility(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.facilityService.DeleteFacility(ctx, id); err != nil {
		return err
	}
	return RespondNoContent(c)
}
