package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck/internal/report"
)

func (s *Server) handleInspectionReport(c echo.Context) error {
	inspection, err := s.findVisibleInspection(c)
	if err != nil {
		return err
	}

	// Report generation fetches photos over the network, so it runs on the
	// request context rather than the short database timeout.
	pdf, err := s.reportGenerator.Generate(c.Request().Context(), inspection, inspection.Items)
	if err != nil {
		return err
	}

	s.log(c).Info("report generated",
		slog.String("inspection_id", inspection.ID.String()),
		slog.Int("bytes", len(pdf)))

	filename := report.Filename(inspection)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
