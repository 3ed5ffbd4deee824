package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de una orden (enum cerrado, nunca string libre).
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions tabla cerrada de transiciones válidas.
// Camino feliz: new → preparing → ready → completed; cancelled alcanzable
// desde cualquier estado no terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:       {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus valida un string contra el enum. Devuelve false si no es un estado conocido.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderTransitions[st]
	return st, ok
}

// CanTransitionTo indica si target es alcanzable desde el estado actual.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado es terminal (la orden es inmutable).
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order representa una orden de cafetería. El estado solo lo muta el orquestador
// de cumplimiento; una orden en estado terminal es inmutable.
type Order struct {
	ID          string
	CafeteriaID string
	Status      OrderStatus
	Lines       []OrderLine
	CreatedAt   time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	UpdatedAt   time.Time
}

// OrderLine línea de una orden: ítem de menú, cantidad y precio unitario al momento
// de la compra. Inmutable después de la creación.
type OrderLine struct {
	OrderID    string
	MenuItemID string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}
