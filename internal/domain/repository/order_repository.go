package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes y sus líneas.
// La creación de órdenes pertenece al flujo externo de checkout; este motor
// solo lee y muta el estado.
type OrderRepository interface {
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) y la devuelve
	// con sus líneas. Usar dentro de una transacción para serializar transiciones
	// de una misma orden.
	GetForUpdate(id string) (*entity.Order, error)
	// UpdateStatus persiste el estado y los timestamps de transición.
	UpdateStatus(order *entity.Order) error
}
