package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// Ensure TxRunner implements fulfillment.TxRunner.
var _ fulfillment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la garantía de atomicidad del pipeline de
// cumplimiento: cambio de estado de la orden y descuentos de inventario se
// confirman juntos o ninguno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	reqRepo repository.IngredientRequirementRepository,
	invRepo repository.InventoryItemRepository,
	alertRepo repository.InventoryAlertRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	menuRepo := NewMenuItemRepository(tx)
	reqRepo := NewIngredientRequirementRepository(tx)
	invRepo := NewInventoryItemRepository(tx)
	alertRepo := NewInventoryAlertRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(orderRepo, menuRepo, reqRepo, invRepo, alertRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
