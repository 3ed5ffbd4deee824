package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de inventario.
const (
	MovementTypeDeduct  = "DEDUCT"  // descuento por orden completada
	MovementTypeRestock = "RESTOCK" // reposición manual
)

// StockMovement registro de auditoría por cada mutación del ledger.
// Una orden completada produce exactamente un movimiento por ingrediente
// (el resolver agrega las líneas antes de descontar).
type StockMovement struct {
	ID              string
	TransactionID   string // ID de la orden o de la operación de reposición
	InventoryItemID string
	Type            string
	Quantity        decimal.Decimal // negativo para DEDUCT, positivo para RESTOCK
	QuantityAfter   decimal.Decimal
	CreatedAt       time.Time
	CreatedBy       string // UserID
}
