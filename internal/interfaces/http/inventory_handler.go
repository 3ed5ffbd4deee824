package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido):
// reposición, listado para el dashboard y barrido de vencimientos.
type InventoryHandler struct {
	restock *fulfillment.RestockUseCase
	queries *fulfillment.QueryUseCase
	expiry  *fulfillment.ExpirySweepUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	restock *fulfillment.RestockUseCase,
	queries *fulfillment.QueryUseCase,
	expiry *fulfillment.ExpirySweepUseCase,
) *InventoryHandler {
	return &InventoryHandler{restock: restock, queries: queries, expiry: expiry}
}

// Restock godoc
// @Summary      Reponer stock de un ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del ítem"
// @Param        body  body  dto.RestockRequest  true  "amount > 0"
// @Success      200   {object}  dto.InventoryItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	userID := GetUserID(c)
	if cafeteriaID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	item, err := h.restock.Restock(c.Context(), cafeteriaID, userID, c.Params("id"), in.Amount)
	if err != nil {
		return inventoryErrorResponse(c, err)
	}
	return c.JSON(dto.FromInventoryItem(item))
}

// ListItems godoc
// @Summary      Listar el inventario de la cafetería
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemDTO
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	items, err := h.queries.ListInventory(c.Context(), cafeteriaID)
	if err != nil {
		return inventoryErrorResponse(c, err)
	}
	out := make([]dto.InventoryItemDTO, 0, len(items))
	for i := range items {
		out = append(out, dto.FromInventoryItem(&items[i]))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// ExpirySweep godoc
// @Summary      Barrido de vencimientos
// @Description  Genera alertas expiring_soon/expired para los ítems dentro de la ventana de aviso.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/expiry-sweep [post]
func (h *InventoryHandler) ExpirySweep(c *fiber.Ctx) error {
	cafeteriaID := GetCafeteriaID(c)
	if cafeteriaID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	created, err := h.expiry.Sweep(c.Context(), cafeteriaID, time.Now())
	if err != nil {
		return inventoryErrorResponse(c, err)
	}
	out := make([]dto.InventoryAlertDTO, 0, len(created))
	for i := range created {
		out = append(out, dto.FromInventoryAlert(&created[i]))
	}
	return c.JSON(fiber.Map{"created": len(out), "alerts": out})
}

// inventoryErrorResponse mapea errores de dominio de inventario a HTTP.
// Una reposición fallida deja la cantidad visible sin cambios.
func inventoryErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
