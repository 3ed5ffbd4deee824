package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// InventoryItemRepository puerto de persistencia para ítems de inventario.
// Quantity nunca se sobreescribe desde memoria del caller: Deduct y Restock son
// operaciones atómicas a nivel de fila (decremento/incremento en el UPDATE mismo),
// y recalculan el estado derivado en la misma sentencia.
type InventoryItemRepository interface {
	GetByID(id string) (*entity.InventoryItem, error)
	ListByCafeteria(cafeteriaID string) ([]entity.InventoryItem, error)
	// Deduct decrementa atómicamente la cantidad con piso en cero
	// (GREATEST(quantity - amount, 0)). Devuelve el ítem posterior al descuento
	// y la cantidad previa (para detectar cambios de banda de stock).
	Deduct(id string, amount decimal.Decimal) (*entity.InventoryItem, decimal.Decimal, error)
	// Restock incrementa atómicamente la cantidad y estampa last_restocked_at.
	// Devuelve también la cantidad previa.
	Restock(id string, amount decimal.Decimal, now time.Time) (*entity.InventoryItem, decimal.Decimal, error)
	// ListExpiringBefore ítems con fecha de vencimiento anterior al límite dado.
	ListExpiringBefore(cafeteriaID string, before time.Time) ([]entity.InventoryItem, error)
}
