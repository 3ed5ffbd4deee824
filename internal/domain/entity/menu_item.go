package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem representa un ítem del menú de una cafetería.
// IsAvailable es un flag derivado: lo escribe únicamente el propagador de
// disponibilidad a partir del stock de sus ingredientes, nunca un caller directo.
type MenuItem struct {
	ID          string
	CafeteriaID string
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
