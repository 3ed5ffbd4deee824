package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
// Deduct y Restock son UPDATEs atómicos a nivel de fila: el decremento, el
// piso en cero y el recálculo del estado derivado ocurren en la misma
// sentencia, nunca como read-then-write desde memoria de la aplicación. Dos
// órdenes concurrentes sobre el mismo ingrediente se serializan en el lock de
// fila del UPDATE.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = `id, cafeteria_id, name, quantity, unit, min_quantity, status, expires_at, last_restocked_at, created_at, updated_at`

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.CafeteriaID, &it.Name, &it.Quantity, &it.Unit, &it.MinQuantity,
		&it.Status, &it.ExpiresAt, &it.LastRestockedAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un ítem de inventario por ID, o nil si no existe.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// ListByCafeteria lista los ítems de inventario de una cafetería.
func (r *InventoryItemRepo) ListByCafeteria(cafeteriaID string) ([]entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE cafeteria_id = $1 ORDER BY name`
	return r.list(query, cafeteriaID)
}

// ListExpiringBefore ítems con vencimiento anterior al límite dado.
func (r *InventoryItemRepo) ListExpiringBefore(cafeteriaID string, before time.Time) ([]entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE cafeteria_id = $1 AND expires_at IS NOT NULL AND expires_at < $2
		ORDER BY expires_at`
	return r.list(query, cafeteriaID, before)
}

func (r *InventoryItemRepo) list(query string, args ...any) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.CafeteriaID, &it.Name, &it.Quantity, &it.Unit, &it.MinQuantity,
			&it.Status, &it.ExpiresAt, &it.LastRestockedAt, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// El estado se deriva en la misma sentencia del UPDATE, a partir de la
// cantidad recién calculada vs min_quantity. El self-join a old expone la
// cantidad previa en el RETURNING (necesaria para detectar cambios de banda).
const deductQuery = `
	UPDATE inventory_items i
	SET quantity = GREATEST(i.quantity - $2, 0),
	    status = CASE
	        WHEN GREATEST(i.quantity - $2, 0) <= 0 THEN 'out_of_stock'
	        WHEN GREATEST(i.quantity - $2, 0) <= i.min_quantity THEN 'low_stock'
	        ELSE 'in_stock'
	    END,
	    updated_at = now()
	FROM inventory_items old
	WHERE i.id = $1 AND old.id = i.id
	RETURNING i.id, i.cafeteria_id, i.name, i.quantity, i.unit, i.min_quantity,
	          i.status, i.expires_at, i.last_restocked_at, i.created_at, i.updated_at,
	          old.quantity`

// Deduct decremento atómico con piso en cero; devuelve el ítem posterior al
// descuento y la cantidad previa, o nil si la fila ya no existe (ítem
// eliminado concurrentemente).
func (r *InventoryItemRepo) Deduct(id string, amount decimal.Decimal) (*entity.InventoryItem, decimal.Decimal, error) {
	return r.mutate(deductQuery, id, amount)
}

const restockQuery = `
	UPDATE inventory_items i
	SET quantity = i.quantity + $2,
	    status = CASE
	        WHEN i.quantity + $2 <= 0 THEN 'out_of_stock'
	        WHEN i.quantity + $2 <= i.min_quantity THEN 'low_stock'
	        ELSE 'in_stock'
	    END,
	    last_restocked_at = $3,
	    updated_at = now()
	FROM inventory_items old
	WHERE i.id = $1 AND old.id = i.id
	RETURNING i.id, i.cafeteria_id, i.name, i.quantity, i.unit, i.min_quantity,
	          i.status, i.expires_at, i.last_restocked_at, i.created_at, i.updated_at,
	          old.quantity`

// Restock incremento atómico con recálculo de estado y estampa de reposición.
func (r *InventoryItemRepo) Restock(id string, amount decimal.Decimal, now time.Time) (*entity.InventoryItem, decimal.Decimal, error) {
	return r.mutate(restockQuery, id, amount, now)
}

func (r *InventoryItemRepo) mutate(query string, args ...any) (*entity.InventoryItem, decimal.Decimal, error) {
	var it entity.InventoryItem
	var prevQty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.CafeteriaID, &it.Name, &it.Quantity, &it.Unit, &it.MinQuantity,
		&it.Status, &it.ExpiresAt, &it.LastRestockedAt, &it.CreatedAt, &it.UpdatedAt,
		&prevQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, nil
		}
		return nil, decimal.Zero, fmt.Errorf("update inventory item: %w", err)
	}
	return &it, prevQty, nil
}
