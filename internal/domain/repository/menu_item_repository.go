package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// MenuItemRepository puerto de persistencia para ítems de menú.
type MenuItemRepository interface {
	GetByID(id string) (*entity.MenuItem, error)
	ListByCafeteria(cafeteriaID string) ([]entity.MenuItem, error)
	// SetAvailability escribe el flag derivado is_available. Solo el propagador
	// de disponibilidad debe llamarlo.
	SetAvailability(id string, available bool) error
}
