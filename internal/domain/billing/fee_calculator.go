package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// OrderTotals desglose puro de una orden: subtotal, tarifa de servicio,
// comisión de la plataforma y pago neto a la cafetería.
type OrderTotals struct {
	Subtotal        decimal.Decimal
	ServiceFee      decimal.Decimal // a cargo del comprador
	Commission      decimal.Decimal // retenida por la plataforma
	CafeteriaPayout decimal.Decimal // Subtotal - Commission
	GrandTotal      decimal.Decimal // Subtotal + ServiceFee
}

// CalculateOrderTotals servicio de dominio sin estado:
// Subtotal   = Σ (cantidad * precio unitario)
// ServiceFee = Subtotal * serviceFeePct
// Commission = Subtotal * commissionPct
// Montos redondeados a 2 decimales al final, no por línea.
func CalculateOrderTotals(lines []entity.OrderLine, serviceFeePct, commissionPct decimal.Decimal) OrderTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Quantity.Mul(l.UnitPrice))
	}
	fee := subtotal.Mul(serviceFeePct).Round(2)
	commission := subtotal.Mul(commissionPct).Round(2)
	subtotal = subtotal.Round(2)
	return OrderTotals{
		Subtotal:        subtotal,
		ServiceFee:      fee,
		Commission:      commission,
		CafeteriaPayout: subtotal.Sub(commission),
		GrandTotal:      subtotal.Add(fee),
	}
}
