package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación del puerto MenuItemRepository sobre PostgreSQL (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador de ítems de menú. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

const menuItemColumns = `id, cafeteria_id, name, price, is_available, created_at, updated_at`

// GetByID obtiene un ítem de menú por ID, o nil si no existe.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	var m entity.MenuItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.CafeteriaID, &m.Name, &m.Price, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// ListByCafeteria lista los ítems de menú de una cafetería.
func (r *MenuItemRepo) ListByCafeteria(cafeteriaID string) ([]entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE cafeteria_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, cafeteriaID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.CafeteriaID, &m.Name, &m.Price, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// SetAvailability escribe el flag derivado is_available.
func (r *MenuItemRepo) SetAvailability(id string, available bool) error {
	query := `UPDATE menu_items SET is_available = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, available)
	if err != nil {
		return fmt.Errorf("set availability: %w", err)
	}
	return nil
}
