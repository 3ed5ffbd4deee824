package fulfillment

import (
	"context"
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// AlertUseCase operaciones de alertas expuestas a operadores y al dashboard:
// listar sin resolver y descartar manualmente.
type AlertUseCase struct {
	alertRepo repository.InventoryAlertRepository
	invRepo   repository.InventoryItemRepository
	notifier  Notifier
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alertRepo repository.InventoryAlertRepository,
	invRepo repository.InventoryItemRepository,
	notifier Notifier,
) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo, invRepo: invRepo, notifier: notifier}
}

// UnresolvedByCafeteria alertas sin resolver de una cafetería (consumo de
// solo lectura del dashboard).
func (uc *AlertUseCase) UnresolvedByCafeteria(ctx context.Context, cafeteriaID string) ([]entity.InventoryAlert, error) {
	return uc.alertRepo.ListUnresolvedByCafeteria(cafeteriaID)
}

// ResolveManually descarta una alerta sin cambio de stock. No se recrea hasta
// que el estado del ítem salga y vuelva a entrar en la banda que la disparó
// (la reconciliación solo corre junto a cambios de cantidad).
// Descartar una alerta ya resuelta es un no-op exitoso.
func (uc *AlertUseCase) ResolveManually(ctx context.Context, cafeteriaID, alertID string) error {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	item, err := uc.invRepo.GetByID(alert.InventoryItemID)
	if err != nil {
		return err
	}
	if item == nil || item.CafeteriaID != cafeteriaID {
		return domain.ErrForbidden
	}
	if alert.Resolved {
		return nil
	}

	now := time.Now()
	if err := uc.alertRepo.Resolve(alert.ID, now); err != nil {
		return err
	}
	if uc.notifier != nil {
		alert.Resolved = true
		alert.ResolvedAt = &now
		go uc.notifier.AlertResolved(*alert)
	}
	return nil
}
