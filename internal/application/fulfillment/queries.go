package fulfillment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/billing"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// QueryUseCase lecturas para el dashboard y consumidores externos: orden con
// totales calculados, inventario y disponibilidad derivada del menú.
// Sin escrituras: el dashboard no tiene interfaz de escritura.
type QueryUseCase struct {
	orderRepo     repository.OrderRepository
	menuRepo      repository.MenuItemRepository
	invRepo       repository.InventoryItemRepository
	serviceFeePct decimal.Decimal
	commissionPct decimal.Decimal
}

// NewQueryUseCase construye el caso de uso de lecturas.
func NewQueryUseCase(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	invRepo repository.InventoryItemRepository,
	serviceFeePct, commissionPct decimal.Decimal,
) *QueryUseCase {
	return &QueryUseCase{
		orderRepo:     orderRepo,
		menuRepo:      menuRepo,
		invRepo:       invRepo,
		serviceFeePct: serviceFeePct,
		commissionPct: commissionPct,
	}
}

// GetOrder devuelve la orden con el desglose de totales (cálculo puro, sin
// estado, sobre las líneas inmutables).
func (uc *QueryUseCase) GetOrder(ctx context.Context, cafeteriaID, orderID string) (*entity.Order, billing.OrderTotals, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, billing.OrderTotals{}, err
	}
	if order == nil {
		return nil, billing.OrderTotals{}, domain.ErrNotFound
	}
	if order.CafeteriaID != cafeteriaID {
		return nil, billing.OrderTotals{}, domain.ErrForbidden
	}
	totals := billing.CalculateOrderTotals(order.Lines, uc.serviceFeePct, uc.commissionPct)
	return order, totals, nil
}

// ListInventory ítems de inventario de la cafetería.
func (uc *QueryUseCase) ListInventory(ctx context.Context, cafeteriaID string) ([]entity.InventoryItem, error) {
	return uc.invRepo.ListByCafeteria(cafeteriaID)
}

// MenuItemAvailability flag derivado de disponibilidad de un ítem de menú.
func (uc *QueryUseCase) MenuItemAvailability(ctx context.Context, cafeteriaID, menuItemID string) (*entity.MenuItem, error) {
	menu, err := uc.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	if menu.CafeteriaID != cafeteriaID {
		return nil, domain.ErrForbidden
	}
	return menu, nil
}
