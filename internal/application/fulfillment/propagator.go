package fulfillment

import (
	"fmt"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// AvailabilityChange flip de disponibilidad reportado al caller para que lo
// reenvíe al gestor de alertas y al colaborador de notificaciones.
type AvailabilityChange struct {
	MenuItemID string
	Available  bool
}

// Propagator recalcula la disponibilidad derivada de los ítems de menú a
// partir del stock actual de sus ingredientes. Es el único componente que
// escribe MenuItem.IsAvailable.
type Propagator struct{}

// NewPropagator construye el propagador.
func NewPropagator() *Propagator { return &Propagator{} }

// Recompute recalcula la disponibilidad de un ítem de menú: disponible si y
// solo si todo requerimiento no opcional tiene quantity >= quantityPerUnit
// (chequeo de capacidad por unidad, no el agregado de ninguna orden) y ningún
// ingrediente requerido está out_of_stock. Idempotente: dos llamadas sin
// mutación intermedia dan el mismo resultado. Escribe el flag solo si cambió.
func (p *Propagator) Recompute(
	reqRepo repository.IngredientRequirementRepository,
	invRepo repository.InventoryItemRepository,
	menuRepo repository.MenuItemRepository,
	menuItemID string,
) (available bool, changed bool, err error) {
	menu, err := menuRepo.GetByID(menuItemID)
	if err != nil {
		return false, false, fmt.Errorf("cargar ítem de menú %s: %w", menuItemID, err)
	}
	if menu == nil {
		return false, false, domain.ErrNotFound
	}

	reqs, err := reqRepo.ListByMenuItem(menuItemID)
	if err != nil {
		return false, false, fmt.Errorf("requerimientos de %s: %w", menuItemID, err)
	}

	// Sin requerimientos: el ítem no consume inventario, siempre disponible.
	available = true
	for _, req := range reqs {
		if req.Optional {
			continue
		}
		item, err := invRepo.GetByID(req.InventoryItemID)
		if err != nil {
			return false, false, fmt.Errorf("stock de %s: %w", req.InventoryItemID, err)
		}
		if item == nil {
			// Ingrediente requerido sin fila de inventario: no disponible,
			// mejor que un "disponible" obsoleto.
			available = false
			break
		}
		if item.Status == entity.StockStatusOutOfStock || item.Quantity.LessThan(req.QuantityPerUnit) {
			available = false
			break
		}
	}

	changed = available != menu.IsAvailable
	if changed {
		if err := menuRepo.SetAvailability(menuItemID, available); err != nil {
			return false, false, fmt.Errorf("escribir disponibilidad de %s: %w", menuItemID, err)
		}
	}
	return available, changed, nil
}

// RecomputeAffected encuentra todo ítem de menú con un requerimiento que
// referencia alguno de los ítems de inventario dados (join explícito
// ingrediente → requerimientos → menú, no un escaneo de todo el menú) y
// recalcula cada uno una sola vez. Devuelve solo los flips.
func (p *Propagator) RecomputeAffected(
	reqRepo repository.IngredientRequirementRepository,
	invRepo repository.InventoryItemRepository,
	menuRepo repository.MenuItemRepository,
	inventoryItemIDs []string,
) ([]AvailabilityChange, error) {
	if len(inventoryItemIDs) == 0 {
		return nil, nil
	}
	menuIDs, err := reqRepo.MenuItemsByInventoryItems(inventoryItemIDs)
	if err != nil {
		return nil, fmt.Errorf("fan-out de ítems de menú afectados: %w", err)
	}

	var changes []AvailabilityChange
	seen := make(map[string]bool, len(menuIDs))
	for _, id := range menuIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		available, changed, err := p.Recompute(reqRepo, invRepo, menuRepo, id)
		if err != nil {
			return nil, err
		}
		if changed {
			changes = append(changes, AvailabilityChange{MenuItemID: id, Available: available})
		}
	}
	return changes, nil
}
