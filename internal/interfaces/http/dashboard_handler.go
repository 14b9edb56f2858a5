package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/reporting"
)

// DashboardHandler maneja el resumen del panel y los lotes por vencer.
type DashboardHandler struct {
	uc *reporting.ReportingUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.ReportingUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del panel (ventas de hoy/mes, stock bajo, más vendidos)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.DashboardSummary(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ExpiringSoon godoc
// @Summary      Lotes que vencen dentro del horizonte configurado
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpiringSoonItem
// @Router       /api/dashboard/expiring-soon [get]
func (h *DashboardHandler) ExpiringSoon(c *fiber.Ctx) error {
	out, err := h.uc.ExpiringSoon(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
