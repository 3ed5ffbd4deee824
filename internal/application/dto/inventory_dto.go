package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// RestockRequest body para POST /api/inventory/items/:id/restock.
type RestockRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InventoryItemDTO ítem de inventario en respuestas.
type InventoryItemDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	Status          string          `json:"status"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	LastRestockedAt *time.Time      `json:"last_restocked_at,omitempty"`
}

// FromInventoryItem arma el DTO desde la entidad.
func FromInventoryItem(item *entity.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		ID:              item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		MinQuantity:     item.MinQuantity,
		Status:          string(item.Status),
		ExpiresAt:       item.ExpiresAt,
		LastRestockedAt: item.LastRestockedAt,
	}
}

// InventoryAlertDTO alerta en respuestas.
type InventoryAlertDTO struct {
	ID              string     `json:"id"`
	InventoryItemID string     `json:"inventory_item_id"`
	Kind            string     `json:"kind"`
	Message         string     `json:"message"`
	Resolved        bool       `json:"resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FromInventoryAlert arma el DTO desde la entidad.
func FromInventoryAlert(a *entity.InventoryAlert) InventoryAlertDTO {
	return InventoryAlertDTO{
		ID:              a.ID,
		InventoryItemID: a.InventoryItemID,
		Kind:            string(a.Kind),
		Message:         a.Message,
		Resolved:        a.Resolved,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
}

// MenuAvailabilityResponse flag derivado de disponibilidad.
type MenuAvailabilityResponse struct {
	MenuItemID  string `json:"menu_item_id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"is_available"`
}
