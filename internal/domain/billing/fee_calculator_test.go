package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cafeteria-api/internal/domain/billing"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLine(menuItemID, qty, unitPrice string) entity.OrderLine {
	return entity.OrderLine{MenuItemID: menuItemID, Quantity: dec(qty), UnitPrice: dec(unitPrice)}
}

// TestCalculateOrderTotals_Desglose vector de referencia con los porcentajes
// por defecto (5% de servicio, 10% de comisión):
//
//	Subtotal   = 2*8.50 + 1*3.00       = 20.00
//	ServiceFee = 20.00 * 0.05          = 1.00
//	Commission = 20.00 * 0.10          = 2.00
//	Payout     = 20.00 - 2.00          = 18.00
//	GrandTotal = 20.00 + 1.00          = 21.00
func TestCalculateOrderTotals_Desglose(t *testing.T) {
	lines := []entity.OrderLine{
		testLine("menu-burger", "2", "8.50"),
		testLine("menu-cafe", "1", "3.00"),
	}

	totals := billing.CalculateOrderTotals(lines, dec("0.05"), dec("0.10"))

	assert.True(t, totals.Subtotal.Equal(dec("20.00")), "subtotal: esperado 20.00, obtenido %s", totals.Subtotal)
	assert.True(t, totals.ServiceFee.Equal(dec("1.00")), "tarifa de servicio: esperado 1.00, obtenido %s", totals.ServiceFee)
	assert.True(t, totals.Commission.Equal(dec("2.00")), "comisión: esperado 2.00, obtenido %s", totals.Commission)
	assert.True(t, totals.CafeteriaPayout.Equal(dec("18.00")), "pago a cafetería: esperado 18.00, obtenido %s", totals.CafeteriaPayout)
	assert.True(t, totals.GrandTotal.Equal(dec("21.00")), "total: esperado 21.00, obtenido %s", totals.GrandTotal)
}

// TestCalculateOrderTotals_RedondeoAlFinal el redondeo a 2 decimales ocurre
// sobre los agregados, no línea por línea: 3 * 3.333 = 9.999 → 10.00, no
// 3 * 3.33.
func TestCalculateOrderTotals_RedondeoAlFinal(t *testing.T) {
	lines := []entity.OrderLine{testLine("menu-a", "3", "3.333")}

	totals := billing.CalculateOrderTotals(lines, dec("0.05"), dec("0.10"))

	assert.True(t, totals.Subtotal.Equal(dec("10.00")), "9.999 redondea a 10.00, obtenido %s", totals.Subtotal)
	assert.True(t, totals.ServiceFee.Equal(dec("0.50")), "9.999 * 0.05 = 0.49995 redondea a 0.50, obtenido %s", totals.ServiceFee)
}

func TestCalculateOrderTotals_SinLineas(t *testing.T) {
	totals := billing.CalculateOrderTotals(nil, dec("0.05"), dec("0.10"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.ServiceFee.IsZero())
	assert.True(t, totals.Commission.IsZero())
	assert.True(t, totals.CafeteriaPayout.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestCalculateOrderTotals_PorcentajesCero(t *testing.T) {
	lines := []entity.OrderLine{testLine("menu-a", "2", "5.00")}

	totals := billing.CalculateOrderTotals(lines, decimal.Zero, decimal.Zero)

	assert.True(t, totals.ServiceFee.IsZero())
	assert.True(t, totals.Commission.IsZero())
	assert.True(t, totals.CafeteriaPayout.Equal(dec("10.00")), "sin comisión el payout es el subtotal completo")
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal))
}

// TestCalculateOrderTotals_InvarianteDeConsistencia para cualquier orden:
// GrandTotal = Subtotal + ServiceFee y Payout = Subtotal - Commission.
func TestCalculateOrderTotals_InvarianteDeConsistencia(t *testing.T) {
	cases := [][]entity.OrderLine{
		{testLine("a", "1", "0.01")},
		{testLine("a", "7", "2.99"), testLine("b", "13", "0.45")},
		{testLine("a", "2", "8.50"), testLine("b", "1", "3.00"), testLine("c", "5", "1.25")},
	}
	for _, lines := range cases {
		totals := billing.CalculateOrderTotals(lines, dec("0.05"), dec("0.10"))
		assert.True(t, totals.GrandTotal.Equal(totals.Subtotal.Add(totals.ServiceFee)))
		assert.True(t, totals.CafeteriaPayout.Equal(totals.Subtotal.Sub(totals.Commission)))
	}
}
