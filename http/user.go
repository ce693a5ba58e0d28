package http

import (
	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

func (s *Server) handleListUsers(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	filter := safecheck.UserFilter{Offset: offset, Limit: limit}
	if r := c.QueryParam("role"); r != "" {
		role := safecheck.Role(r)
		filter.Role = &role
	}

	users, total, err := s.userService.FindUsers(ctx, filter)
	if err != nil {
		return err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userResponse(user))
	}
	return RespondList(c, responses, total, offset, limit)
}
