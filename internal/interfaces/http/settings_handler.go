package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/dto"
	"github.com/sokha/pos-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración de tasas de cambio.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetCurrencies godoc
// @Summary      Obtener tasas de cambio configuradas
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CurrencyRate
// @Router       /api/settings/currencies [get]
func (h *SettingsHandler) GetCurrencies(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrencyRates()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateCurrencies godoc
// @Summary      Actualizar tasas de cambio (upsert por código)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CurrencyRate  true  "Tasas a guardar"
// @Success      200   {array}  dto.CurrencyRate
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/currencies [post]
func (h *SettingsHandler) UpdateCurrencies(c *fiber.Ctx) error {
	var in []dto.CurrencyRate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	for _, rate := range in {
		if err := validate.Struct(rate); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
		}
	}
	out, err := h.uc.UpdateCurrencyRates(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
