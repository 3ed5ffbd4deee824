package fulfillment_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia.
//
// memStore simula la base de datos: mapas protegidos por mutex, y un TxRunner
// con semántica real de rollback (snapshot antes de la función, restore si
// falla). txMu serializa las transacciones completas, igual que lo harían los
// locks de fila de PostgreSQL sobre las mismas filas.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	orders map[string]entity.Order
	menus  map[string]entity.MenuItem
	reqs   []entity.IngredientRequirement
	items  map[string]entity.InventoryItem
	alerts map[string]entity.InventoryAlert
	movs   []entity.StockMovement

	// failDeduct simula un error de BD al descontar el ítem indicado.
	failDeduct map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		orders:     make(map[string]entity.Order),
		menus:      make(map[string]entity.MenuItem),
		items:      make(map[string]entity.InventoryItem),
		alerts:     make(map[string]entity.InventoryAlert),
		failDeduct: make(map[string]bool),
	}
}

// ── builders de fixtures ──────────────────────────────────────────────────────

func (s *memStore) addOrder(id, cafeteriaID string, status entity.OrderStatus, lines ...entity.OrderLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.orders[id] = entity.Order{
		ID:          id,
		CafeteriaID: cafeteriaID,
		Status:      status,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *memStore) addMenuItem(id, cafeteriaID, name string, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[id] = entity.MenuItem{
		ID:          id,
		CafeteriaID: cafeteriaID,
		Name:        name,
		Price:       decimal.RequireFromString("8.50"),
		IsAvailable: available,
	}
}

func (s *memStore) addInventoryItem(id, cafeteriaID, name, qty, minQty string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := decimal.RequireFromString(qty)
	min := decimal.RequireFromString(minQty)
	s.items[id] = entity.InventoryItem{
		ID:          id,
		CafeteriaID: cafeteriaID,
		Name:        name,
		Quantity:    q,
		Unit:        "unidad",
		MinQuantity: min,
		Status:      entity.DeriveStockStatus(q, min),
	}
}

func (s *memStore) addRequirement(menuItemID, inventoryItemID, perUnit string, optional bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, entity.IngredientRequirement{
		MenuItemID:      menuItemID,
		InventoryItemID: inventoryItemID,
		QuantityPerUnit: decimal.RequireFromString(perUnit),
		Unit:            "unidad",
		Optional:        optional,
	})
}

func line(orderID, menuItemID, qty, unitPrice string) entity.OrderLine {
	return entity.OrderLine{
		OrderID:    orderID,
		MenuItemID: menuItemID,
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString(unitPrice),
	}
}

// ── lecturas de conveniencia para los asserts ────────────────────────────────

func (s *memStore) orderStatus(id string) entity.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status
}

func (s *memStore) itemQuantity(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Quantity
}

func (s *memStore) itemStatus(id string) entity.StockStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Status
}

func (s *memStore) menuAvailable(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menus[id].IsAvailable
}

func (s *memStore) setOrderStatus(id string, status entity.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[id]
	o.Status = status
	s.orders[id] = o
}

// unresolvedAlerts alertas sin resolver del (ítem, tipo).
func (s *memStore) unresolvedAlerts(itemID string, kind entity.AlertKind) []entity.InventoryAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.InventoryAlert
	for _, a := range s.alerts {
		if a.InventoryItemID == itemID && a.Kind == kind && !a.Resolved {
			out = append(out, a)
		}
	}
	return out
}

// totalAlerts todas las alertas del (ítem, tipo), resueltas o no.
func (s *memStore) totalAlerts(itemID string, kind entity.AlertKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.alerts {
		if a.InventoryItemID == itemID && a.Kind == kind {
			n++
		}
	}
	return n
}

// resolveAlertDirect marca la alerta como resuelta, simulando un descarte manual.
func (s *memStore) resolveAlertDirect(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.alerts[id]
	a.Resolved = true
	a.ResolvedAt = &at
	s.alerts[id] = a
}

func (s *memStore) movementsFor(itemID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.movs {
		if m.InventoryItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movs)
}

// ── snapshot / restore para la semántica de rollback ─────────────────────────

type memSnapshot struct {
	orders map[string]entity.Order
	menus  map[string]entity.MenuItem
	items  map[string]entity.InventoryItem
	alerts map[string]entity.InventoryAlert
	movs   []entity.StockMovement
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		orders: make(map[string]entity.Order, len(s.orders)),
		menus:  make(map[string]entity.MenuItem, len(s.menus)),
		items:  make(map[string]entity.InventoryItem, len(s.items)),
		alerts: make(map[string]entity.InventoryAlert, len(s.alerts)),
		movs:   append([]entity.StockMovement(nil), s.movs...),
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.menus {
		snap.menus[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.alerts {
		snap.alerts[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = snap.orders
	s.menus = snap.menus
	s.items = snap.items
	s.alerts = snap.alerts
	s.movs = snap.movs
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// memTxRunner ejecuta fn sobre los repos del store con rollback por snapshot.
// beforeRun simula a otro worker confirmando un cambio justo antes de que la
// transacción comience (la ventana de carrera que detecta la precondición de
// estado dentro de la tx).
type memTxRunner struct {
	s         *memStore
	beforeRun func()
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	reqRepo repository.IngredientRequirementRepository,
	invRepo repository.InventoryItemRepository,
	alertRepo repository.InventoryAlertRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if r.beforeRun != nil {
		r.beforeRun()
	}
	snap := r.s.snapshot()
	err := fn(
		&memOrderRepo{s: r.s},
		&memMenuRepo{s: r.s},
		&memReqRepo{s: r.s},
		&memInvRepo{s: r.s},
		&memAlertRepo{s: r.s},
		&memMovRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── repos ────────────────────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	// txMu ya serializa las transacciones completas.
	return r.GetByID(id)
}

func (r *memOrderRepo) UpdateStatus(order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return errors.New("orden inexistente")
	}
	r.s.orders[order.ID] = *order
	return nil
}

type memMenuRepo struct{ s *memStore }

var _ repository.MenuItemRepository = (*memMenuRepo)(nil)

func (r *memMenuRepo) GetByID(id string) (*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.menus[id]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *memMenuRepo) ListByCafeteria(cafeteriaID string) ([]entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.MenuItem
	for _, m := range r.s.menus {
		if m.CafeteriaID == cafeteriaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMenuRepo) SetAvailability(id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.menus[id]
	if !ok {
		return errors.New("ítem de menú inexistente")
	}
	m.IsAvailable = available
	r.s.menus[id] = m
	return nil
}

type memReqRepo struct{ s *memStore }

var _ repository.IngredientRequirementRepository = (*memReqRepo)(nil)

func (r *memReqRepo) ListByMenuItem(menuItemID string) ([]entity.IngredientRequirement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.IngredientRequirement
	for _, req := range r.s.reqs {
		if req.MenuItemID == menuItemID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memReqRepo) MenuItemsByInventoryItems(inventoryItemIDs []string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[string]bool, len(inventoryItemIDs))
	for _, id := range inventoryItemIDs {
		wanted[id] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, req := range r.s.reqs {
		if wanted[req.InventoryItemID] && !seen[req.MenuItemID] {
			seen[req.MenuItemID] = true
			out = append(out, req.MenuItemID)
		}
	}
	return out, nil
}

type memInvRepo struct{ s *memStore }

var _ repository.InventoryItemRepository = (*memInvRepo)(nil)

func (r *memInvRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *memInvRepo) ListByCafeteria(cafeteriaID string) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InventoryItem
	for _, it := range r.s.items {
		if it.CafeteriaID == cafeteriaID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memInvRepo) Deduct(id string, amount decimal.Decimal) (*entity.InventoryItem, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failDeduct[id] {
		return nil, decimal.Zero, errors.New("fallo simulado de base de datos")
	}
	it, ok := r.s.items[id]
	if !ok {
		return nil, decimal.Zero, nil
	}
	prev := it.Quantity
	q := it.Quantity.Sub(amount)
	if q.IsNegative() {
		q = decimal.Zero
	}
	it.Quantity = q
	it.Status = entity.DeriveStockStatus(q, it.MinQuantity)
	it.UpdatedAt = time.Now()
	r.s.items[id] = it
	cp := it
	return &cp, prev, nil
}

func (r *memInvRepo) Restock(id string, amount decimal.Decimal, now time.Time) (*entity.InventoryItem, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, decimal.Zero, nil
	}
	prev := it.Quantity
	it.Quantity = it.Quantity.Add(amount)
	it.Status = entity.DeriveStockStatus(it.Quantity, it.MinQuantity)
	it.LastRestockedAt = &now
	it.UpdatedAt = now
	r.s.items[id] = it
	cp := it
	return &cp, prev, nil
}

func (r *memInvRepo) ListExpiringBefore(cafeteriaID string, before time.Time) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InventoryItem
	for _, it := range r.s.items {
		if it.CafeteriaID == cafeteriaID && it.ExpiresAt != nil && it.ExpiresAt.Before(before) {
			out = append(out, it)
		}
	}
	return out, nil
}

type memAlertRepo struct{ s *memStore }

var _ repository.InventoryAlertRepository = (*memAlertRepo)(nil)

func (r *memAlertRepo) GetByID(id string) (*entity.InventoryAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (r *memAlertRepo) GetUnresolved(inventoryItemID string, kind entity.AlertKind) (*entity.InventoryAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.InventoryItemID == inventoryItemID && a.Kind == kind && !a.Resolved {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) Create(alert *entity.InventoryAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts[alert.ID] = *alert
	return nil
}

func (r *memAlertRepo) Resolve(id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok || a.Resolved {
		return nil
	}
	a.Resolved = true
	a.ResolvedAt = &at
	r.s.alerts[id] = a
	return nil
}

func (r *memAlertRepo) ListUnresolvedByCafeteria(cafeteriaID string) ([]entity.InventoryAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.InventoryAlert
	for _, a := range r.s.alerts {
		if a.Resolved {
			continue
		}
		if it, ok := r.s.items[a.InventoryItemID]; ok && it.CafeteriaID == cafeteriaID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memMovRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovRepo)(nil)

func (r *memMovRepo) Create(mov *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movs = append(r.s.movs, *mov)
	return nil
}
