package fulfillment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// ResolutionError falla al resolver los ingredientes de un ítem de menú
// (datos de mapeo faltantes o corruptos). El orquestador marca el ítem
// afectado como no disponible en lugar de dejarlo "disponible" obsoleto.
type ResolutionError struct {
	MenuItemID string
	Reason     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolución de ingredientes fallida para ítem de menú %s: %s", e.MenuItemID, e.Reason)
}

// Unwrap permite errors.Is(err, domain.ErrRequirementResolutionFailed).
func (e *ResolutionError) Unwrap() error { return domain.ErrRequirementResolutionFailed }

// Resolver mapea ítems de menú a sus requerimientos de ingredientes.
// Solo lectura; sin estado propio, los repos llegan por parámetro para poder
// usarlo dentro o fuera de una transacción.
type Resolver struct{}

// NewResolver construye el resolver.
func NewResolver() *Resolver { return &Resolver{} }

// RequirementsFor devuelve los requerimientos de un ítem de menú.
// Un ítem sin requerimientos no consume inventario y es, por definición,
// siempre disponible.
func (r *Resolver) RequirementsFor(
	reqRepo repository.IngredientRequirementRepository,
	menuItemID string,
) ([]entity.IngredientRequirement, error) {
	reqs, err := reqRepo.ListByMenuItem(menuItemID)
	if err != nil {
		return nil, &ResolutionError{MenuItemID: menuItemID, Reason: err.Error()}
	}
	for _, req := range reqs {
		if req.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
			return nil, &ResolutionError{MenuItemID: menuItemID, Reason: "cantidad por unidad no positiva"}
		}
	}
	return reqs, nil
}

// RequirementsForOrder agrega los requerimientos de todas las líneas de una
// orden: cantidad de la línea * cantidad por unidad, sumando las líneas que
// comparten un ingrediente. Así el ledger aplica un solo descuento por
// ingrediente por orden (un solo registro de auditoría por ingrediente).
// Los ingredientes opcionales también se descuentan: su ausencia no bloquea
// la orden porque el descuento tiene piso en cero.
func (r *Resolver) RequirementsForOrder(
	reqRepo repository.IngredientRequirementRepository,
	lines []entity.OrderLine,
) (map[string]decimal.Decimal, error) {
	needs := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		reqs, err := r.RequirementsFor(reqRepo, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			total := req.QuantityPerUnit.Mul(line.Quantity)
			needs[req.InventoryItemID] = needs[req.InventoryItemID].Add(total)
		}
	}
	return needs, nil
}
