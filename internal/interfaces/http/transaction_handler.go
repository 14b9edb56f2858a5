package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/application/inventory"
	"github.com/sokha/pos-api/internal/application/reporting"
)

// TransactionHandler maneja ventas, ajustes de stock y compras.
// Las escrituras van al motor de inventario; las lecturas a reporting.
type TransactionHandler struct {
	engine    *inventory.InventoryUseCase
	reporting *reporting.ReportingUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(engine *inventory.InventoryUseCase, rep *reporting.ReportingUseCase) *TransactionHandler {
	return &TransactionHandler{engine: engine, reporting: rep}
}

// CreateSale godoc
// @Summary      Registrar venta
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales [post]
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	items := make([]inventory.SaleLine, 0, len(in.SaleItems))
	for _, it := range in.SaleItems {
		items = append(items, inventory.SaleLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	sale, err := h.engine.ProcessSale(c.UserContext(), inventory.SaleInput{
		StaffID:       GetStaffID(c),
		WarehouseID:   in.WarehouseID,
		Items:         items,
		TotalAmount:   in.TotalAmount,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return domainError(c, err)
	}
	out := dto.SaleResponse{
		ID:              sale.ID,
		ReceiptNumber:   sale.ReceiptNumber,
		TransactionTime: sale.TransactionTime,
		TotalAmount:     sale.TotalAmount,
		PaymentMethod:   sale.PaymentMethod,
		Status:          sale.Status,
	}
	for _, it := range sale.SaleItems {
		out.SaleItems = append(out.SaleItems, dto.SaleItemResponse{
			ProductID: it.ProductID,
			NameEN:    it.NameEN,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SalesHistory godoc
// @Summary      Historial de ventas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleSummary
// @Router       /api/transactions/sales [get]
func (h *TransactionHandler) SalesHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.reporting.SalesHistory(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SaleDetail godoc
// @Summary      Detalle de una venta
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/sales/{id} [get]
func (h *TransactionHandler) SaleDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.reporting.SaleDetail(c.UserContext(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// RevertSale godoc
// @Summary      Revertir una venta (devuelve el stock)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/sales/{id} [delete]
func (h *TransactionHandler) RevertSale(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.engine.RevertSale(c.UserContext(), id, GetStaffID(c)); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock (positivo o negativo)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Datos del ajuste"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/stock [post]
func (h *TransactionHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	err := h.engine.AdjustStock(c.UserContext(), inventory.AdjustmentInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Delta:       in.AdjustmentQuantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		StaffID:     GetStaffID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPurchase godoc
// @Summary      Registrar compra (crea un lote nuevo)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "Datos de la compra"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/purchase [post]
func (h *TransactionHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if !parseBody(c, &in) {
		return nil
	}
	var expiry *time.Time
	if in.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiry_date debe ser YYYY-MM-DD"})
		}
		expiry = &t
	}
	batch, err := h.engine.RecordPurchase(c.UserContext(), inventory.PurchaseInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		ExpiryDate:  expiry,
		BatchNumber: in.BatchNumber,
		Cost:        in.Cost,
		Notes:       in.Notes,
		StaffID:     GetStaffID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"batch_id": batch.ID})
}

// PurchaseHistory godoc
// @Summary      Historial de compras
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.PurchaseHistoryItem
// @Router       /api/transactions/purchase-history [get]
func (h *TransactionHandler) PurchaseHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.reporting.PurchaseHistory(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
