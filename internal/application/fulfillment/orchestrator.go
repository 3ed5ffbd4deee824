package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// maxTransitionRetries reintentos locales ante ErrConcurrentModification.
// Agotados los reintentos el error se expone al caller, que debe releer y
// reintentar (contrato estable para los consumidores).
const maxTransitionRetries = 3

// Orchestrator dirige la máquina de estados de las órdenes y, en la
// transición a completed, coordina resolver, ledger, propagador y gestor de
// alertas como una sola unidad de trabajo transaccional.
type Orchestrator struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	menuRepo   repository.MenuItemRepository
	resolver   *Resolver
	ledger     *Ledger
	propagator *Propagator
	alerts     *AlertManager
	notifier   Notifier
}

// NewOrchestrator construye el orquestador. orderRepo y menuRepo van atados
// al pool (lecturas fuera de tx y marcado conservador de no disponible).
func NewOrchestrator(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	notifier Notifier,
) *Orchestrator {
	return &Orchestrator{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		menuRepo:   menuRepo,
		resolver:   NewResolver(),
		ledger:     NewLedger(),
		propagator: NewPropagator(),
		alerts:     NewAlertManager(),
		notifier:   notifier,
	}
}

// sideEffects cambios colectados dentro de la tx para notificar tras el commit.
type sideEffects struct {
	changes  []AvailabilityChange
	created  []entity.InventoryAlert
	resolved []entity.InventoryAlert
}

// TransitionOrderStatus valida y aplica una transición de estado.
//
// Solo la transición a completed toca inventario, exactamente una vez por
// orden: pedir completed sobre una orden ya completada es un no-op exitoso,
// no un re-descuento (guard de idempotencia). La cancelación no revierte
// inventario: antes de completed nada se descontó, así que no hay
// transacción compensatoria que hacer.
//
// El estado de la orden se relee con lock de fila inmediatamente antes del
// commit; si cambió desde la vista del caller la transición se rechaza con
// ErrConcurrentModification y se reintenta localmente hasta
// maxTransitionRetries veces.
func (o *Orchestrator) TransitionOrderStatus(
	ctx context.Context,
	cafeteriaID, userID, orderID string,
	target entity.OrderStatus,
) (*entity.Order, error) {
	if _, ok := entity.ParseOrderStatus(string(target)); !ok {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, target)
	}

	var lastErr error
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		order, err := o.orderRepo.GetByID(orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		if order.CafeteriaID != cafeteriaID {
			return nil, domain.ErrForbidden
		}

		// Guard de idempotencia: completed repetido no vuelve a descontar.
		if order.Status == entity.OrderStatusCompleted && target == entity.OrderStatusCompleted {
			return order, nil
		}
		if !order.Status.CanTransitionTo(target) {
			return nil, fmt.Errorf("%w: de %s a %s", domain.ErrInvalidTransition, order.Status, target)
		}

		updated, effects, err := o.runTransition(ctx, order, target, userID)
		if err == nil {
			notifyAsync(o.notifier, effects)
			return updated, nil
		}
		if errors.Is(err, domain.ErrConcurrentModification) {
			lastErr = err
			continue
		}
		var resErr *ResolutionError
		if errors.As(err, &resErr) {
			// Mapeo corrupto: marcar el ítem como no disponible (fuera de la
			// tx abortada) en vez de dejarlo "disponible" obsoleto.
			if mErr := o.menuRepo.SetAvailability(resErr.MenuItemID, false); mErr == nil && o.notifier != nil {
				o.notifier.MenuItemAvailabilityChanged(resErr.MenuItemID, false)
			}
		}
		return nil, err
	}
	return nil, lastErr
}

// runTransition ejecuta una transición como una transacción: relectura con
// lock, precondición de estado, pipeline de descuento si aplica, y escritura
// del nuevo estado. Commit o rollback completos.
func (o *Orchestrator) runTransition(
	ctx context.Context,
	order *entity.Order,
	target entity.OrderStatus,
	userID string,
) (*entity.Order, *sideEffects, error) {
	var updated *entity.Order
	effects := &sideEffects{}

	err := o.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		menuRepo repository.MenuItemRepository,
		reqRepo repository.IngredientRequirementRepository,
		invRepo repository.InventoryItemRepository,
		alertRepo repository.InventoryAlertRepository,
		movRepo repository.StockMovementRepository,
	) error {
		current, err := orderRepo.GetForUpdate(order.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		// Precondición explícita: si el estado cambió desde la lectura del
		// caller, otra transición ganó la carrera.
		if current.Status != order.Status {
			return domain.ErrConcurrentModification
		}

		now := time.Now()
		switch target {
		case entity.OrderStatusPreparing:
			current.PreparingAt = &now
		case entity.OrderStatusReady:
			current.ReadyAt = &now
		case entity.OrderStatusCancelled:
			current.CancelledAt = &now
		case entity.OrderStatusCompleted:
			current.CompletedAt = &now
			if err := o.completePipeline(current, userID, now, effects,
				menuRepo, reqRepo, invRepo, alertRepo, movRepo); err != nil {
				return err
			}
		}

		current.Status = target
		current.UpdatedAt = now
		if err := orderRepo.UpdateStatus(current); err != nil {
			return fmt.Errorf("actualizar estado de orden %s: %w", current.ID, err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, effects, nil
}

// completePipeline pipeline de descuento de la transición a completed:
// resolver requerimientos agregados, descontar en lote, propagar
// disponibilidad a todo ítem de menú que comparte ingredientes y reconciliar
// alertas de cada ingrediente tocado.
func (o *Orchestrator) completePipeline(
	order *entity.Order,
	userID string,
	now time.Time,
	effects *sideEffects,
	menuRepo repository.MenuItemRepository,
	reqRepo repository.IngredientRequirementRepository,
	invRepo repository.InventoryItemRepository,
	alertRepo repository.InventoryAlertRepository,
	movRepo repository.StockMovementRepository,
) error {
	needs, err := o.resolver.RequirementsForOrder(reqRepo, order.Lines)
	if err != nil {
		return err
	}
	deducted, err := o.ledger.DeductBatch(invRepo, movRepo, order.ID, userID, needs, now)
	if err != nil {
		return err
	}

	itemIDs := make([]string, 0, len(deducted))
	for _, d := range deducted {
		itemIDs = append(itemIDs, d.Item.ID)
	}
	changes, err := o.propagator.RecomputeAffected(reqRepo, invRepo, menuRepo, itemIDs)
	if err != nil {
		return err
	}
	effects.changes = append(effects.changes, changes...)

	for i := range deducted {
		created, resolved, err := o.alerts.Reconcile(alertRepo, &deducted[i].Item, deducted[i].PrevStatus, now)
		if err != nil {
			return err
		}
		effects.created = append(effects.created, created...)
		effects.resolved = append(effects.resolved, resolved...)
	}
	return nil
}

// notifyAsync reenvía flips de disponibilidad y cambios de alertas al
// colaborador de notificaciones, fuera del camino transaccional
// (fire-and-forget, siempre después del commit).
func notifyAsync(n Notifier, effects *sideEffects) {
	if n == nil || effects == nil {
		return
	}
	go func() {
		for _, ch := range effects.changes {
			n.MenuItemAvailabilityChanged(ch.MenuItemID, ch.Available)
		}
		for _, a := range effects.created {
			n.AlertCreated(a)
		}
		for _, a := range effects.resolved {
			n.AlertResolved(a)
		}
	}()
}
