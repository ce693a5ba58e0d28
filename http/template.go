package http

import (
	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// CheckItemPayload is the wire shape of one checklist item.
type CheckItemPayload struct {
	ID    string `json:"id" validate:"required,max=100"`
	Title string `json:"title" validate:"required,max=500"`
	Type  string `json:"type" validate:"required,oneof=checkbox text number"`
}

// CreateTemplateRequest is the request payload for creating a template.
type CreateTemplateRequest struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	Items       []CheckItemPayload `json:"items" validate:"dive"`
}

// UpdateTemplateRequest is the request payload for updating a template.
type UpdateTemplateRequest struct {
	Name        *string             `json:"name" validate:"omitempty,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Items       *[]CheckItemPayload `json:"items" validate:"omitempty,dive"`
}

func toCheckItems(payloads []CheckItemPayload) []safecheck.CheckItem {
	items := make([]safecheck.CheckItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, safecheck.CheckItem{
			ID:    p.ID,
			Title: p.Title,
			Kind:  safecheck.ItemKind(p.Type),
		})
	}
	return items
}

func (s *Server) handleListTemplates(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	templates, total, err := s.templateService.FindTemplates(ctx, safecheck.TemplateFilter{Offset: offset, Limit: limit})
	if err != nil {
		return err
	}
	return RespondList(c, templates, total, offset, limit)
}

func (s *Server) handleGetTemplate(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	template, err := s.templateService.FindTemplateByID(ctx, id)
	if err != nil {
		return err
	}
	return RespondOK(c, template)
}

func (s *Server) handleCreateTemplate(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req CreateTemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	template := &safecheck.Template{
		Name:        req.Name,
		Description: req.Description,
		Items:       toCheckItems(req.Items),
	}
	if err := s.templateService.CreateTemplate(ctx, template); err != nil {
		return err
	}
	return RespondCreated(c, template)
}

func (s *Server) handleUpdateTemplate(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := safecheck.TemplateUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Items != nil {
		items := toCheckItems(*req.Items)
		upd.Items = &items
	}

	template, err := s.templateService.UpdateTemplate(ctx, id, upd)
	if err != nil {
		return err
	}
	return RespondOK(c, template)
}

func (s *Server) handleDeleteTemplate(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.templateService.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	return RespondNoContent(c)
}
