package entity

import "github.com/shopspring/decimal"

// IngredientRequirement arista muchos-a-muchos entre ítems de menú e ítems de
// inventario: cuánto de un ingrediente consume una unidad del ítem de menú.
// Un ingrediente opcional no bloquea la disponibilidad del ítem si falta.
type IngredientRequirement struct {
	MenuItemID      string
	InventoryItemID string
	QuantityPerUnit decimal.Decimal
	Unit            string
	Optional        bool
}
