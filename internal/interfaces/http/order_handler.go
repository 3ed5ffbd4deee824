package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de órdenes (protegido).
// La creación de órdenes pertenece al flujo externo de checkout; aquí solo
// transiciones de estado y lectura.
type OrderHandler struct {
	orchestrator *fulfillment.Orchestrator
	queries      *fulfillment.QueryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orchestrator *fulfillment.Orchestrator, queries *fulfillment.QueryUseCase) *OrderHandler {
	return &OrderHandler{orchestrator: orchestrator, queries: queries}
}

// TransitionStatus godoc
// @Summary      Transicionar el estado de una orden
// @Description  Valida la transición contra la máquina de estados. Solo la
//
//	transición a completed descuenta inventario, exactamente una vez por orden.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la orden"
// @Param        body  body  dto.TransitionOrderStatusRequest  true  "status destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) TransitionStatus(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	userID := GetUserID(c)
	if cafeteriaID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	orderID := c.Params("id")
	var in dto.TransitionOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	target, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido: " + in.Status})
	}

	order, err := h.orchestrator.TransitionOrderStatus(c.Context(), cafeteriaID, userID, orderID, target)
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.JSON(dto.FromOrder(order, nil))
}

// GetByID godoc
// @Summary      Obtener una orden con totales
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, totals, err := h.queries.GetOrder(c.Context(), cafeteriaID, c.Params("id"))
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.JSON(dto.FromOrder(order, &totals))
}

// orderErrorResponse mapea errores de dominio del motor de órdenes a HTTP.
// Una transición fallida deja la orden visiblemente en su estado anterior,
// con el motivo en el cuerpo del error.
func orderErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "la orden cambió, releer y reintentar"})
	case errors.Is(err, domain.ErrInventoryUpdateFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVENTORY_UPDATE_FAILED", Message: err.Error()})
	case errors.Is(err, domain.ErrRequirementResolutionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REQUIREMENT_RESOLUTION_FAILED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
