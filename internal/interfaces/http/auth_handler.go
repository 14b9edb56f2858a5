package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sokha/pos-api/internal/application/auth"
	"github.com/sokha/pos-api/internal/application/dto"
)

// AuthHandler maneja inicio de sesión y gestión del personal.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CreateStaff godoc
// @Summary      Crear miembro del personal
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos del personal"
// @Success      201   {object}  dto.StaffResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/staff [post]
func (h *AuthHandler) CreateStaff(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateStaff(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStaff godoc
// @Summary      Listar personal
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StaffResponse
// @Router       /api/auth/staff [get]
func (h *AuthHandler) ListStaff(c *fiber.Ctx) error {
	out, err := h.uc.ListStaff()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStaff godoc
// @Summary      Actualizar miembro del personal
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del miembro"
// @Param        body  body  dto.UpdateStaffRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StaffResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/staff/{id} [put]
func (h *AuthHandler) UpdateStaff(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateStaffRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateStaff(id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// DeactivateStaff godoc
// @Summary      Desactivar miembro del personal
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/staff/{id} [delete]
func (h *AuthHandler) DeactivateStaff(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeactivateStaff(GetStaffID(c), id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
