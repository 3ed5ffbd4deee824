package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// IngredientRequirementRepository puerto de solo lectura sobre la arista
// (ítem de menú, ítem de inventario).
type IngredientRequirementRepository interface {
	// ListByMenuItem devuelve los requerimientos de un ítem de menú.
	// Lista vacía significa que el ítem no consume inventario (siempre disponible).
	ListByMenuItem(menuItemID string) ([]entity.IngredientRequirement, error)
	// MenuItemsByInventoryItems fan-out inverso: todos los ítems de menú que
	// referencian alguno de los ingredientes dados (join explícito, no un
	// escaneo de todo el menú).
	MenuItemsByInventoryItems(inventoryItemIDs []string) ([]string, error)
}
