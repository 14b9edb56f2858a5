package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/application/reporting"
)

// ReportsHandler maneja los reportes por rango de fechas.
type ReportsHandler struct {
	uc *reporting.ReportingUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reporting.ReportingUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// SalesReport godoc
// @Summary      Reporte de ventas por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportsHandler) SalesReport(c *fiber.Ctx) error {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date y end_date son requeridos"})
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date debe ser YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date debe ser YYYY-MM-DD"})
	}
	out, err := h.uc.SalesReport(c.UserContext(), start, end)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
