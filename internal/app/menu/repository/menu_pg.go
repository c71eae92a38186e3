package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

type MenuPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Category    *string
	Quantity    *int
	IsAvailable *bool
}

func (p MenuPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil &&
		p.Quantity == nil && p.IsAvailable == nil
}

type MenuRepositoryInterface interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int) (domain.MenuItem, error)
	CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int, p MenuPatch) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) MenuRepositoryInterface {
	return &MenuRepository{db: db}
}

const menuColumns = `id, name, price, category, quantity, is_available, created_at`

func scanMenuItem(row interface{ Scan(...any) error }) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Quantity, &m.IsAvailable, &m.CreatedAt)
	return m, err
}

func (r *MenuRepository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MenuRepository) GetItem(ctx context.Context, id int) (domain.MenuItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)
	m, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return m, nil
}

func (r *MenuRepository) CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (name, price, category, quantity, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+menuColumns,
		item.Name, item.Price, item.Category, item.Quantity, item.IsAvailable)
	created, err := scanMenuItem(row)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	return created, nil
}

func (r *MenuRepository) UpdateItem(ctx context.Context, id int, p MenuPatch) (domain.MenuItem, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if p.IsAvailable != nil {
		add("is_available", *p.IsAvailable)
	}
	if len(sets) == 0 {
		return domain.MenuItem{}, fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE menu_items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), menuColumns)

	m, err := scanMenuItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("update menu item %d: %w", id, err)
	}
	return m, nil
}

// DeleteItem removes a menu item. Historical orders are untouched: they hold
// a snapshot, not a reference.
func (r *MenuRepository) DeleteItem(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("menu item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
