package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// TestCanTransitionTo_TablaCompleta recorre el producto cartesiano completo de
// la tabla de transiciones: camino feliz new → preparing → ready → completed,
// cancelación desde cualquier estado no terminal, y nada más.
func TestCanTransitionTo_TablaCompleta(t *testing.T) {
	all := []entity.OrderStatus{
		entity.OrderStatusNew,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	}
	valid := map[entity.OrderStatus]map[entity.OrderStatus]bool{
		entity.OrderStatusNew:       {entity.OrderStatusPreparing: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusPreparing: {entity.OrderStatusReady: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusReady:     {entity.OrderStatusCompleted: true, entity.OrderStatusCancelled: true},
		entity.OrderStatusCompleted: {},
		entity.OrderStatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, valid[from][to], got, "transición %s → %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, entity.OrderStatusCompleted.IsTerminal())
	assert.True(t, entity.OrderStatusCancelled.IsTerminal())
	assert.False(t, entity.OrderStatusNew.IsTerminal())
	assert.False(t, entity.OrderStatusPreparing.IsTerminal())
	assert.False(t, entity.OrderStatusReady.IsTerminal())
}

// TestParseOrderStatus el enum es cerrado: cualquier string fuera de la tabla
// se rechaza, sin importar mayúsculas o espacios.
func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"new", "preparing", "ready", "completed", "cancelled"} {
		st, ok := entity.ParseOrderStatus(valid)
		assert.True(t, ok, "%q es un estado del enum", valid)
		assert.Equal(t, entity.OrderStatus(valid), st)
	}
	for _, invalid := range []string{"", "delivered", "COMPLETED", "Ready", " new", "canceled"} {
		_, ok := entity.ParseOrderStatus(invalid)
		assert.False(t, ok, "%q no debe aceptarse", invalid)
	}
}

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		name     string
		qty, min string
		want     entity.StockStatus
	}{
		{"cero es out_of_stock", "0", "5", entity.StockStatusOutOfStock},
		{"negativo es out_of_stock", "-1", "5", entity.StockStatusOutOfStock},
		{"igual al mínimo es low_stock", "5", "5", entity.StockStatusLowStock},
		{"debajo del mínimo es low_stock", "3", "5", entity.StockStatusLowStock},
		{"encima del mínimo es in_stock", "6", "5", entity.StockStatusInStock},
		{"mínimo cero y stock positivo es in_stock", "1", "0", entity.StockStatusInStock},
		{"fraccionario debajo del mínimo", "4.5", "5", entity.StockStatusLowStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := entity.DeriveStockStatus(decimal.RequireFromString(tc.qty), decimal.RequireFromString(tc.min))
			assert.Equal(t, tc.want, got)
		})
	}
}
