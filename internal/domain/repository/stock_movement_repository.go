package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// StockMovementRepository puerto de auditoría del ledger (solo inserción).
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
}
