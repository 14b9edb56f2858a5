package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/infrastructure/payway"
)

// PaymentHandler maneja la generación de códigos QR de pago (PayWay/ABA).
type PaymentHandler struct {
	payway *payway.Client
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(client *payway.Client) *PaymentHandler {
	return &PaymentHandler{payway: client}
}

// CreateQR godoc
// @Summary      Generar QR de pago KHQR para una transacción
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQRRequest  true  "Datos de la transacción"
// @Success      200   {object}  payway.QRResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/payments/aba-qr [post]
func (h *PaymentHandler) CreateQR(c *fiber.Ctx) error {
	if !h.payway.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PAYMENT_NOT_CONFIGURED", Message: "el gateway de pago no está configurado"})
	}
	var in dto.CreateQRRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.payway.GenerateQR(c.UserContext(), payway.QRRequest{
		TranID:      in.TranID,
		Amount:      in.Amount.StringFixed(2),
		ItemsBase64: in.ItemsBase64,
	})
	if err != nil {
		var gwErr *payway.GatewayError
		if errors.As(err, &gwErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAYWAY_" + gwErr.Code, Message: gwErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PAYMENT_FAILED", Message: "no se pudo generar el código QR"})
	}
	c.Set("Content-Type", "application/json")
	return c.Send(out.Raw)
}
