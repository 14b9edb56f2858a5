package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/infrastructure/telegram"
)

// OrderHandler maneja los pedidos del catálogo público. El pedido solo
// dispara la notificación: no muta inventario ni persiste nada.
type OrderHandler struct {
	notifier *telegram.Notifier
}

// NewOrderHandler construye el handler.
func NewOrderHandler(notifier *telegram.Notifier) *OrderHandler {
	return &OrderHandler{notifier: notifier}
}

// Create godoc
// @Summary      Recibir pedido del catálogo público
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	order := telegram.Order{
		CustomerName:  in.Customer.Name,
		CustomerPhone: in.Customer.Phone,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, telegram.OrderItem{
			NameEN:       it.NameEN,
			NameKM:       it.NameKM,
			SellingPrice: it.SellingPrice,
			Quantity:     it.Quantity,
		})
	}
	// Best-effort: la respuesta no depende del resultado de la notificación.
	h.notifier.NotifyOrder(c.UserContext(), order)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order received successfully! Thank you."})
}
