package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado derivado del stock de un ítem de inventario.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// DeriveStockStatus calcula el estado a partir de cantidad vs umbral mínimo.
// Es la única forma válida de obtener el estado: nunca se escribe de forma
// independiente a un cambio de cantidad.
func DeriveStockStatus(quantity, minQuantity decimal.Decimal) StockStatus {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return StockStatusOutOfStock
	}
	if quantity.LessThanOrEqual(minQuantity) {
		return StockStatusLowStock
	}
	return StockStatusInStock
}

// InventoryItem representa un ingrediente físico en el inventario de una cafetería.
// Quantity solo se muta a través del ledger (deduct/restock), nunca se sobreescribe.
type InventoryItem struct {
	ID              string
	CafeteriaID     string
	Name            string
	Quantity        decimal.Decimal
	Unit            string
	MinQuantity     decimal.Decimal
	Status          StockStatus
	ExpiresAt       *time.Time
	LastRestockedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
