package fulfillment

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// Ledger aplica las mutaciones de stock del inventario. Cada mutación es un
// decremento/incremento atómico a nivel de fila (nunca read-then-write desde
// memoria del caller) y deja un registro de auditoría en stock_movements.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger { return &Ledger{} }

// StockChange resultado de una mutación de stock: el ítem posterior a la
// mutación y la banda de stock en la que estaba antes. El gestor de alertas
// solo reconcilia cuando la banda cambió.
type StockChange struct {
	Item       entity.InventoryItem
	PrevStatus entity.StockStatus
}

// DeductBatch aplica los descuentos de una orden completa como un solo lote
// dentro de la transacción del caller. Los ítems se procesan en orden
// determinista de ID para que dos órdenes concurrentes adquieran los locks de
// fila en el mismo orden. Si un solo ítem falla, el error aborta la tx y
// ningún descuento queda aplicado.
// El descuento tiene piso en cero: stock insuficiente no falla la orden, la
// insuficiencia se señala solo vía disponibilidad derivada y alertas.
func (l *Ledger) DeductBatch(
	invRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	orderID, userID string,
	needs map[string]decimal.Decimal,
	now time.Time,
) ([]StockChange, error) {
	ids := make([]string, 0, len(needs))
	for id := range needs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	changes := make([]StockChange, 0, len(ids))
	for _, id := range ids {
		amount := needs[id]
		if !amount.GreaterThan(decimal.Zero) {
			continue
		}
		item, prevQty, err := invRepo.Deduct(id, amount)
		if err != nil {
			return nil, fmt.Errorf("%w: ítem %s: %v", domain.ErrInventoryUpdateFailed, id, err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w: ítem %s no existe", domain.ErrInventoryUpdateFailed, id)
		}
		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			TransactionID:   orderID,
			InventoryItemID: id,
			Type:            entity.MovementTypeDeduct,
			Quantity:        amount.Neg(),
			QuantityAfter:   item.Quantity,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, fmt.Errorf("%w: auditoría ítem %s: %v", domain.ErrInventoryUpdateFailed, id, err)
		}
		changes = append(changes, StockChange{
			Item:       *item,
			PrevStatus: entity.DeriveStockStatus(prevQty, item.MinQuantity),
		})
	}
	return changes, nil
}

// RestockInTx incrementa el stock de un ítem dentro de la transacción del
// caller y registra el movimiento. Devuelve el ítem posterior a la reposición
// y su banda de stock previa.
func (l *Ledger) RestockInTx(
	invRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	itemID, userID string,
	amount decimal.Decimal,
	now time.Time,
) (*StockChange, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, prevQty, err := invRepo.Restock(itemID, amount, now)
	if err != nil {
		return nil, fmt.Errorf("restock ítem %s: %w", itemID, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   uuid.New().String(),
		InventoryItemID: itemID,
		Type:            entity.MovementTypeRestock,
		Quantity:        amount,
		QuantityAfter:   item.Quantity,
		CreatedAt:       now,
		CreatedBy:       userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("auditoría restock ítem %s: %w", itemID, err)
	}
	return &StockChange{
		Item:       *item,
		PrevStatus: entity.DeriveStockStatus(prevQty, item.MinQuantity),
	}, nil
}
