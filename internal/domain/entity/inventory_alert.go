package entity

import "time"

// AlertKind tipo de alerta de inventario (enum cerrado).
type AlertKind string

const (
	AlertKindLowStock     AlertKind = "low_stock"
	AlertKindOutOfStock   AlertKind = "out_of_stock"
	AlertKindExpiringSoon AlertKind = "expiring_soon"
	AlertKindExpired      AlertKind = "expired"
)

// InventoryAlert alerta derivada del estado de un ítem de inventario.
// Invariante: como máximo una alerta sin resolver por (ítem, tipo);
// la hace cumplir el gestor de alertas en cada reconciliación.
type InventoryAlert struct {
	ID              string
	InventoryItemID string
	Kind            AlertKind
	Message         string
	Resolved        bool
	ResolvedAt      *time.Time
	CreatedAt       time.Time
}
