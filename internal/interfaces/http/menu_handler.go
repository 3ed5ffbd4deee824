package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// MenuHandler lectura de disponibilidad derivada del menú (protegido).
// Sin escrituras: is_available lo posee el propagador.
type MenuHandler struct {
	queries *fulfillment.QueryUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(queries *fulfillment.QueryUseCase) *MenuHandler {
	return &MenuHandler{queries: queries}
}

// Availability godoc
// @Summary      Disponibilidad derivada de un ítem de menú
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem de menú"
// @Success      200  {object}  dto.MenuAvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id}/availability [get]
func (h *MenuHandler) Availability(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	menu, err := h.queries.MenuItemAvailability(c.Context(), cafeteriaID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem de menú no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.MenuAvailabilityResponse{
		MenuItemID:  menu.ID,
		Name:        menu.Name,
		IsAvailable: menu.IsAvailable,
	})
}
