package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// ExpirySweepUseCase barrido de vencimientos: deriva alertas expiring_soon
// para ítems dentro de la ventana de aviso y expired para los ya vencidos.
// Mismo patrón de deduplicación que las alertas de banda de stock.
type ExpirySweepUseCase struct {
	invRepo    repository.InventoryItemRepository
	alertRepo  repository.InventoryAlertRepository
	alerts     *AlertManager
	notifier   Notifier
	warnWindow time.Duration
}

// NewExpirySweepUseCase construye el caso de uso. warnWindow es la antelación
// con la que un ítem se considera "por vencer".
func NewExpirySweepUseCase(
	invRepo repository.InventoryItemRepository,
	alertRepo repository.InventoryAlertRepository,
	notifier Notifier,
	warnWindow time.Duration,
) *ExpirySweepUseCase {
	return &ExpirySweepUseCase{
		invRepo:    invRepo,
		alertRepo:  alertRepo,
		alerts:     NewAlertManager(),
		notifier:   notifier,
		warnWindow: warnWindow,
	}
}

// Sweep recorre los ítems de la cafetería con vencimiento dentro de la
// ventana y alinea sus alertas de vencimiento. Devuelve las alertas creadas
// en esta pasada.
func (uc *ExpirySweepUseCase) Sweep(ctx context.Context, cafeteriaID string, now time.Time) ([]entity.InventoryAlert, error) {
	items, err := uc.invRepo.ListExpiringBefore(cafeteriaID, now.Add(uc.warnWindow))
	if err != nil {
		return nil, err
	}

	effects := &sideEffects{}
	for i := range items {
		item := &items[i]
		if item.ExpiresAt == nil {
			continue
		}
		if !item.ExpiresAt.After(now) {
			// Ya vencido: alerta expired y se cierra la de por-vencer.
			msg := fmt.Sprintf("vencido: %s (venció %s)", item.Name, item.ExpiresAt.Format("2006-01-02"))
			created, err := uc.alerts.EnsureUnresolved(uc.alertRepo, item.ID, entity.AlertKindExpired, msg, now)
			if err != nil {
				return nil, err
			}
			if created != nil {
				effects.created = append(effects.created, *created)
			}
			resolved, err := uc.alerts.ResolveKind(uc.alertRepo, item.ID, entity.AlertKindExpiringSoon, now)
			if err != nil {
				return nil, err
			}
			if resolved != nil {
				effects.resolved = append(effects.resolved, *resolved)
			}
			continue
		}
		msg := fmt.Sprintf("por vencer: %s (vence %s)", item.Name, item.ExpiresAt.Format("2006-01-02"))
		created, err := uc.alerts.EnsureUnresolved(uc.alertRepo, item.ID, entity.AlertKindExpiringSoon, msg, now)
		if err != nil {
			return nil, err
		}
		if created != nil {
			effects.created = append(effects.created, *created)
		}
	}

	notifyAsync(uc.notifier, effects)
	return effects.created, nil
}
