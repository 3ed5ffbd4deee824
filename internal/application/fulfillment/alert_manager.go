package fulfillment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// AlertManager deriva y deduplica alertas de stock a partir del estado del
// ledger. Invariante: a lo sumo una alerta sin resolver por (ítem, tipo).
// El patrón crear-si-ausente / resolver-al-recuperar evita spam de alertas
// cuando descuentos repetidos dejan al ítem en la misma banda de stock.
type AlertManager struct{}

// NewAlertManager construye el gestor de alertas.
func NewAlertManager() *AlertManager { return &AlertManager{} }

// Reconcile alinea las alertas de banda de stock de un ítem con su estado
// actual: al entrar a low_stock/out_of_stock asegura exactamente una alerta
// sin resolver de ese tipo y resuelve la del otro tipo; al volver a in_stock
// resuelve ambas. Si la banda no cambió no hace nada: eso es lo que garantiza
// que una alerta descartada manualmente no se recree hasta que el estado
// salga y vuelva a entrar en la banda, y que descuentos repetidos dentro de
// la misma banda no generen spam.
func (m *AlertManager) Reconcile(
	alertRepo repository.InventoryAlertRepository,
	item *entity.InventoryItem,
	prevStatus entity.StockStatus,
	now time.Time,
) (created, resolved []entity.InventoryAlert, err error) {
	if item.Status == prevStatus {
		return nil, nil, nil
	}
	switch item.Status {
	case entity.StockStatusLowStock:
		msg := fmt.Sprintf("stock bajo: %s (%s %s, mínimo %s)",
			item.Name, item.Quantity.String(), item.Unit, item.MinQuantity.String())
		c, err := m.EnsureUnresolved(alertRepo, item.ID, entity.AlertKindLowStock, msg, now)
		if err != nil {
			return nil, nil, err
		}
		if c != nil {
			created = append(created, *c)
		}
		r, err := m.ResolveKind(alertRepo, item.ID, entity.AlertKindOutOfStock, now)
		if err != nil {
			return nil, nil, err
		}
		if r != nil {
			resolved = append(resolved, *r)
		}

	case entity.StockStatusOutOfStock:
		msg := fmt.Sprintf("sin stock: %s", item.Name)
		c, err := m.EnsureUnresolved(alertRepo, item.ID, entity.AlertKindOutOfStock, msg, now)
		if err != nil {
			return nil, nil, err
		}
		if c != nil {
			created = append(created, *c)
		}
		r, err := m.ResolveKind(alertRepo, item.ID, entity.AlertKindLowStock, now)
		if err != nil {
			return nil, nil, err
		}
		if r != nil {
			resolved = append(resolved, *r)
		}

	case entity.StockStatusInStock:
		for _, kind := range []entity.AlertKind{entity.AlertKindLowStock, entity.AlertKindOutOfStock} {
			r, err := m.ResolveKind(alertRepo, item.ID, kind, now)
			if err != nil {
				return nil, nil, err
			}
			if r != nil {
				resolved = append(resolved, *r)
			}
		}
	}
	return created, resolved, nil
}

// EnsureUnresolved garantiza que exista exactamente una alerta sin resolver
// del (ítem, tipo). Devuelve la alerta solo si fue creada en esta llamada.
func (m *AlertManager) EnsureUnresolved(
	alertRepo repository.InventoryAlertRepository,
	itemID string,
	kind entity.AlertKind,
	message string,
	now time.Time,
) (*entity.InventoryAlert, error) {
	existing, err := alertRepo.GetUnresolved(itemID, kind)
	if err != nil {
		return nil, fmt.Errorf("consultar alerta %s de %s: %w", kind, itemID, err)
	}
	if existing != nil {
		// Ya hay una sin resolver: nunca duplicar.
		return nil, nil
	}
	alert := &entity.InventoryAlert{
		ID:              uuid.New().String(),
		InventoryItemID: itemID,
		Kind:            kind,
		Message:         message,
		CreatedAt:       now,
	}
	if err := alertRepo.Create(alert); err != nil {
		return nil, fmt.Errorf("crear alerta %s de %s: %w", kind, itemID, err)
	}
	return alert, nil
}

// ResolveKind resuelve la alerta sin resolver del (ítem, tipo) si existe.
// Devuelve la alerta resuelta, o nil si no había ninguna.
func (m *AlertManager) ResolveKind(
	alertRepo repository.InventoryAlertRepository,
	itemID string,
	kind entity.AlertKind,
	now time.Time,
) (*entity.InventoryAlert, error) {
	existing, err := alertRepo.GetUnresolved(itemID, kind)
	if err != nil {
		return nil, fmt.Errorf("consultar alerta %s de %s: %w", kind, itemID, err)
	}
	if existing == nil {
		return nil, nil
	}
	if err := alertRepo.Resolve(existing.ID, now); err != nil {
		return nil, fmt.Errorf("resolver alerta %s: %w", existing.ID, err)
	}
	existing.Resolved = true
	existing.ResolvedAt = &now
	return existing, nil
}
