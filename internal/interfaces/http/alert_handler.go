package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// AlertHandler maneja las peticiones HTTP de alertas de inventario (protegido).
type AlertHandler struct {
	alerts *fulfillment.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *fulfillment.AlertUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListUnresolved godoc
// @Summary      Alertas sin resolver de la cafetería
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryAlertDTO
// @Router       /api/inventory/alerts [get]
func (h *AlertHandler) ListUnresolved(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	alerts, err := h.alerts.UnresolvedByCafeteria(c.Context(), cafeteriaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryAlertDTO, 0, len(alerts))
	for i := range alerts {
		out = append(out, dto.FromInventoryAlert(&alerts[i]))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// Resolve godoc
// @Summary      Descartar una alerta manualmente
// @Description  No se recrea hasta que el estado del ítem salga y vuelva a entrar en la banda que la disparó.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	err := h.alerts.ResolveManually(c.Context(), cafeteriaID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "alerta resuelta"})
}
