package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.IngredientRequirementRepository = (*IngredientRequirementRepo)(nil)

// IngredientRequirementRepo implementación del puerto de requerimientos sobre PostgreSQL (usable con pool o tx).
type IngredientRequirementRepo struct {
	q Querier
}

// NewIngredientRequirementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRequirementRepository(q Querier) *IngredientRequirementRepo {
	return &IngredientRequirementRepo{q: q}
}

// ListByMenuItem requerimientos de un ítem de menú.
func (r *IngredientRequirementRepo) ListByMenuItem(menuItemID string) ([]entity.IngredientRequirement, error) {
	query := `
		SELECT menu_item_id, inventory_item_id, quantity_per_unit, unit, optional
		FROM ingredient_requirements WHERE menu_item_id = $1`
	rows, err := r.q.Query(context.Background(), query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	var reqs []entity.IngredientRequirement
	for rows.Next() {
		var req entity.IngredientRequirement
		if err := rows.Scan(&req.MenuItemID, &req.InventoryItemID, &req.QuantityPerUnit, &req.Unit, &req.Optional); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// MenuItemsByInventoryItems fan-out inverso: ítems de menú con algún
// requerimiento sobre los ingredientes dados. Un solo join, no un escaneo de
// todo el menú por descuento.
func (r *IngredientRequirementRepo) MenuItemsByInventoryItems(inventoryItemIDs []string) ([]string, error) {
	if len(inventoryItemIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT DISTINCT menu_item_id
		FROM ingredient_requirements WHERE inventory_item_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, inventoryItemIDs)
	if err != nil {
		return nil, fmt.Errorf("fan-out menu items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan menu item id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
