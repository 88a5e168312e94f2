package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
)

// RecipientHandler CRUD de reglas de destinatarios del reporte semanal.
type RecipientHandler struct {
	uc *report.RecipientUseCase
}

// NewRecipientHandler construye el handler.
func NewRecipientHandler(uc *report.RecipientUseCase) *RecipientHandler {
	return &RecipientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de destinatarios
// @Tags         lot-report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecipientRuleRequest  true  "category_ids, user_ids, partner_ids"
// @Success      201   {object}  dto.RecipientRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lot-report/recipients [post]
func (h *RecipientHandler) Create(c *fiber.Ctx) error {
	var in dto.RecipientRuleRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reglas de destinatarios
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.RecipientRuleResponse
// @Router       /api/lot-report/recipients [get]
func (h *RecipientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener regla por ID
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la regla"
// @Success      200  {object}  dto.RecipientRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lot-report/recipients/{id} [get]
func (h *RecipientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar categorías y destinatarios de una regla
// @Tags         lot-report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la regla"
// @Param        body  body  dto.RecipientRuleRequest  true  "category_ids, user_ids, partner_ids"
// @Success      200   {object}  dto.RecipientRuleResponse
// @Router       /api/lot-report/recipients/{id} [put]
func (h *RecipientHandler) Update(c *fiber.Ctx) error {
	var in dto.RecipientRuleRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla
// @Tags         lot-report
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la regla"
// @Success      204
// @Router       /api/lot-report/recipients/{id} [delete]
func (h *RecipientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
