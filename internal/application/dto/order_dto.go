package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/billing"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// TransitionOrderStatusRequest body para PATCH /api/orders/:id/status.
type TransitionOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineDTO línea de orden en respuestas.
type OrderLineDTO struct {
	MenuItemID string          `json:"menu_item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// OrderTotalsDTO desglose de totales de la orden.
type OrderTotalsDTO struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServiceFee      decimal.Decimal `json:"service_fee"`
	Commission      decimal.Decimal `json:"commission"`
	CafeteriaPayout decimal.Decimal `json:"cafeteria_payout"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// OrderResponse orden con líneas, timestamps de transición y totales.
type OrderResponse struct {
	ID          string          `json:"id"`
	CafeteriaID string          `json:"cafeteria_id"`
	Status      string          `json:"status"`
	Lines       []OrderLineDTO  `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
	PreparingAt *time.Time      `json:"preparing_at,omitempty"`
	ReadyAt     *time.Time      `json:"ready_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	Totals      *OrderTotalsDTO `json:"totals,omitempty"`
}

// FromOrder arma la respuesta desde la entidad (totals opcional).
func FromOrder(order *entity.Order, totals *billing.OrderTotals) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		CafeteriaID: order.CafeteriaID,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		PreparingAt: order.PreparingAt,
		ReadyAt:     order.ReadyAt,
		CompletedAt: order.CompletedAt,
		CancelledAt: order.CancelledAt,
	}
	for _, l := range order.Lines {
		resp.Lines = append(resp.Lines, OrderLineDTO{
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	if totals != nil {
		resp.Totals = &OrderTotalsDTO{
			Subtotal:        totals.Subtotal,
			ServiceFee:      totals.ServiceFee,
			Commission:      totals.Commission,
			CafeteriaPayout: totals.CafeteriaPayout,
			GrandTotal:      totals.GrandTotal,
		}
	}
	return resp
}
