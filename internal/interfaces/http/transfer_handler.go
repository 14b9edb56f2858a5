package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/application/inventory"
	"github.com/sokha/pos-api/internal/application/reporting"
	"github.com/sokha/pos-api/internal/domain/entity"
)

// TransferHandler maneja los traslados de stock entre bodegas.
type TransferHandler struct {
	engine    *inventory.InventoryUseCase
	reporting *reporting.ReportingUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(engine *inventory.InventoryUseCase, rep *reporting.ReportingUseCase) *TransferHandler {
	return &TransferHandler{engine: engine, reporting: rep}
}

// Create godoc
// @Summary      Crear traslado de stock entre bodegas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Datos del traslado"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if !parseBody(c, &in) {
		return nil
	}
	items := make([]entity.TransferItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.TransferItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	transferID, err := h.engine.TransferStock(c.UserContext(), inventory.TransferInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Items:           items,
		Notes:           in.Notes,
		StaffID:         GetStaffID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transfer_id": transferID})
}

// History godoc
// @Summary      Historial de traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.TransferHistoryItem
// @Router       /api/transfers [get]
func (h *TransferHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.reporting.TransferHistory(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
