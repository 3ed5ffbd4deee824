package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.InventoryAlertRepository = (*InventoryAlertRepo)(nil)

// InventoryAlertRepo implementación del puerto InventoryAlertRepository sobre PostgreSQL (usable con pool o tx).
// La tabla lleva un índice único parcial sobre (inventory_item_id, kind)
// WHERE NOT resolved: la BD respalda el invariante de una sola alerta sin
// resolver por (ítem, tipo) aun si dos reconciliaciones corren a la vez.
type InventoryAlertRepo struct {
	q Querier
}

// NewInventoryAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewInventoryAlertRepository(q Querier) *InventoryAlertRepo {
	return &InventoryAlertRepo{q: q}
}

const alertColumns = `id, inventory_item_id, kind, message, resolved, resolved_at, created_at`

func scanAlert(row pgx.Row) (*entity.InventoryAlert, error) {
	var a entity.InventoryAlert
	err := row.Scan(&a.ID, &a.InventoryItemID, &a.Kind, &a.Message, &a.Resolved, &a.ResolvedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID obtiene una alerta por ID, o nil si no existe.
func (r *InventoryAlertRepo) GetByID(id string) (*entity.InventoryAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM inventory_alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// GetUnresolved alerta sin resolver de un (ítem, tipo), o nil si no hay.
func (r *InventoryAlertRepo) GetUnresolved(inventoryItemID string, kind entity.AlertKind) (*entity.InventoryAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM inventory_alerts
		WHERE inventory_item_id = $1 AND kind = $2 AND NOT resolved`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, inventoryItemID, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unresolved alert: %w", err)
	}
	return a, nil
}

// Create persiste una alerta nueva. Una violación del índice único parcial
// significa que otra reconciliación creó la alerta primero.
func (r *InventoryAlertRepo) Create(alert *entity.InventoryAlert) error {
	query := `
		INSERT INTO inventory_alerts (id, inventory_item_id, kind, message, resolved, resolved_at, created_at)
		VALUES ($1, $2, $3, $4, false, NULL, $5)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.InventoryItemID, alert.Kind, alert.Message, alert.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// Resolve marca la alerta como resuelta y estampa la hora.
func (r *InventoryAlertRepo) Resolve(id string, at time.Time) error {
	query := `UPDATE inventory_alerts SET resolved = true, resolved_at = $2 WHERE id = $1 AND NOT resolved`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	return nil
}

// ListUnresolvedByCafeteria alertas sin resolver de una cafetería (join a
// inventory_items, que lleva el cafeteria_id).
func (r *InventoryAlertRepo) ListUnresolvedByCafeteria(cafeteriaID string) ([]entity.InventoryAlert, error) {
	query := `
		SELECT a.id, a.inventory_item_id, a.kind, a.message, a.resolved, a.resolved_at, a.created_at
		FROM inventory_alerts a
		JOIN inventory_items i ON i.id = a.inventory_item_id
		WHERE i.cafeteria_id = $1 AND NOT a.resolved
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, cafeteriaID)
	if err != nil {
		return nil, fmt.Errorf("list unresolved alerts: %w", err)
	}
	defer rows.Close()

	var alerts []entity.InventoryAlert
	for rows.Next() {
		var a entity.InventoryAlert
		if err := rows.Scan(&a.ID, &a.InventoryItemID, &a.Kind, &a.Message, &a.Resolved, &a.ResolvedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
