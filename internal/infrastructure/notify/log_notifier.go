package notify

import (
	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

// Ensure LogNotifier implements fulfillment.Notifier.
var _ fulfillment.Notifier = (*LogNotifier)(nil)

// LogNotifier adaptador del colaborador de notificaciones que emite los
// eventos al log estructurado. La entrega real a canales de operadores
// (correo, chat) vive en un servicio externo que consume estos eventos;
// este adaptador mantiene el contrato fire-and-forget sin red de por medio.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador sobre el logger de la app.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// MenuItemAvailabilityChanged emite el flip de disponibilidad de un ítem de menú.
func (n *LogNotifier) MenuItemAvailabilityChanged(menuItemID string, available bool) {
	n.log.Info().
		Str("menu_item_id", menuItemID).
		Bool("available", available).
		Msg("disponibilidad de ítem de menú cambió")
}

// AlertCreated emite una alerta de inventario recién creada.
func (n *LogNotifier) AlertCreated(alert entity.InventoryAlert) {
	n.log.Warn().
		Str("alert_id", alert.ID).
		Str("inventory_item_id", alert.InventoryItemID).
		Str("kind", string(alert.Kind)).
		Str("message", alert.Message).
		Msg("alerta de inventario creada")
}

// AlertResolved emite la resolución de una alerta.
func (n *LogNotifier) AlertResolved(alert entity.InventoryAlert) {
	n.log.Info().
		Str("alert_id", alert.ID).
		Str("inventory_item_id", alert.InventoryItemID).
		Str("kind", string(alert.Kind)).
		Msg("alerta de inventario resuelta")
}
