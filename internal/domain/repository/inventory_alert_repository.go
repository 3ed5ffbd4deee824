package repository

import (
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// InventoryAlertRepository puerto de persistencia para alertas de inventario.
type InventoryAlertRepository interface {
	GetByID(id string) (*entity.InventoryAlert, error)
	// GetUnresolved devuelve la alerta sin resolver de un (ítem, tipo), o nil.
	// El invariante de unicidad garantiza que hay a lo sumo una.
	GetUnresolved(inventoryItemID string, kind entity.AlertKind) (*entity.InventoryAlert, error)
	Create(alert *entity.InventoryAlert) error
	// Resolve marca la alerta como resuelta y estampa la hora.
	Resolve(id string, at time.Time) error
	ListUnresolvedByCafeteria(cafeteriaID string) ([]entity.InventoryAlert, error)
}
