package fulfillment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// RestockUseCase reposición manual de un ítem de inventario: incremento
// atómico, reconciliación de alertas (una recuperación resuelve las alertas
// de banda) y propagación de disponibilidad a los ítems de menú respaldados
// por el ingrediente. Todo en una transacción.
type RestockUseCase struct {
	txRunner   TxRunner
	invRepo    repository.InventoryItemRepository
	ledger     *Ledger
	propagator *Propagator
	alerts     *AlertManager
	notifier   Notifier
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryItemRepository,
	notifier Notifier,
) *RestockUseCase {
	return &RestockUseCase{
		txRunner:   txRunner,
		invRepo:    invRepo,
		ledger:     NewLedger(),
		propagator: NewPropagator(),
		alerts:     NewAlertManager(),
		notifier:   notifier,
	}
}

// Restock incrementa el stock del ítem en amount. Una reposición fallida deja
// la cantidad visible sin cambios (rollback completo).
func (uc *RestockUseCase) Restock(
	ctx context.Context,
	cafeteriaID, userID, itemID string,
	amount decimal.Decimal,
) (*entity.InventoryItem, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.invRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CafeteriaID != cafeteriaID {
		return nil, domain.ErrForbidden
	}

	var restocked *entity.InventoryItem
	effects := &sideEffects{}
	err = uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		menuRepo repository.MenuItemRepository,
		reqRepo repository.IngredientRequirementRepository,
		invRepo repository.InventoryItemRepository,
		alertRepo repository.InventoryAlertRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()
		change, err := uc.ledger.RestockInTx(invRepo, movRepo, itemID, userID, amount, now)
		if err != nil {
			return err
		}
		created, resolved, err := uc.alerts.Reconcile(alertRepo, &change.Item, change.PrevStatus, now)
		if err != nil {
			return err
		}
		effects.created = append(effects.created, created...)
		effects.resolved = append(effects.resolved, resolved...)

		changes, err := uc.propagator.RecomputeAffected(reqRepo, invRepo, menuRepo, []string{itemID})
		if err != nil {
			return err
		}
		effects.changes = append(effects.changes, changes...)
		restocked = &change.Item
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyAsync(uc.notifier, effects)
	return restocked, nil
}
