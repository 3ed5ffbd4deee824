package fulfillment

import (
	"context"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el pipeline de
// descuento: o se confirman el cambio de estado y todas las mutaciones de
// inventario, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		menuRepo repository.MenuItemRepository,
		reqRepo repository.IngredientRequirementRepository,
		invRepo repository.InventoryItemRepository,
		alertRepo repository.InventoryAlertRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Notifier colaborador externo de notificaciones. Las llamadas son
// fire-and-forget y nunca bloquean el camino transaccional: se invocan
// después del commit.
type Notifier interface {
	MenuItemAvailabilityChanged(menuItemID string, available bool)
	AlertCreated(alert entity.InventoryAlert)
	AlertResolved(alert entity.InventoryAlert)
}
