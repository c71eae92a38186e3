package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"food-ordering-system/internal/domain"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so the same store code
// runs inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const orderColumns = `id, user_id, fullname, contact, location, items, total, status,
	payment_method, payment_status, payment_proof, payment_intent_id, refund_status, created_at`

type ordersStore struct {
	q queryer
}

type OrdersRepository struct {
	ordersStore
	db *sql.DB
}

func NewOrdersRepository(db *sql.DB) *OrdersRepository {
	return &OrdersRepository{ordersStore: ordersStore{q: db}, db: db}
}

// RunInTx runs fn against a Store bound to one transaction. A non-nil error
// from fn rolls everything back.
func (r *OrdersRepository) RunInTx(ctx context.Context, fn func(Store) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&ordersStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o      domain.Order
		userID sql.NullInt64
		items  []byte
	)
	err := row.Scan(&o.ID, &userID, &o.Fullname, &o.Contact, &o.Location, &items,
		&o.Total, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
		&o.PaymentProof, &o.PaymentIntentID, &o.RefundStatus, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.UserID = int(userID.Int64)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			// Corrupted snapshots surface as an empty list; readers
			// re-sanitize anyway.
			o.Items = nil
		}
	}
	return o, nil
}

func (s *ordersStore) GetOrder(ctx context.Context, id int) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

func (s *ordersStore) GetOrderForUpdate(ctx context.Context, id int) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("lock order %d: %w", id, err)
	}
	return o, nil
}

func (s *ordersStore) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *ordersStore) InsertOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal items: %w", err)
	}
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, fullname, contact, location, items, total,
			status, payment_method, payment_status, payment_proof)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+orderColumns,
		nullableInt(o.UserID), o.Fullname, o.Contact, o.Location, items, o.Total,
		o.Status, o.PaymentMethod, o.PaymentStatus, o.PaymentProof)
	created, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

func (s *ordersStore) UpdateOrder(ctx context.Context, id int, p OrderPatch) (domain.Order, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Fullname != nil {
		add("fullname", *p.Fullname)
	}
	if p.Contact != nil {
		add("contact", *p.Contact)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Items != nil {
		items, err := json.Marshal(*p.Items)
		if err != nil {
			return domain.Order{}, fmt.Errorf("marshal items: %w", err)
		}
		add("items", items)
	}
	if p.Total != nil {
		add("total", *p.Total)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if len(sets) == 0 {
		return domain.Order{}, fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), orderColumns)

	o, err := scanOrder(s.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}
	return o, nil
}

func (s *ordersStore) DeleteOrder(ctx context.Context, id int) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete order %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (s *ordersStore) OrderExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order %d: %w", id, err)
	}
	return exists, nil
}

func (s *ordersStore) SetPaymentStatus(ctx context.Context, id int, st domain.PaymentStatus) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx,
		`UPDATE orders SET payment_status = $1 WHERE id = $2 RETURNING `+orderColumns,
		st, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("set payment status for order %d: %w", id, err)
	}
	return o, nil
}

func (s *ordersStore) SetPaymentProof(ctx context.Context, id int, proof string) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx,
		`UPDATE orders SET payment_proof = $1 WHERE id = $2 RETURNING `+orderColumns,
		proof, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("set payment proof for order %d: %w", id, err)
	}
	return o, nil
}

func (s *ordersStore) SetPaymentIntent(ctx context.Context, id int, intentID string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE orders SET payment_method = $1, payment_status = $2, payment_intent_id = $3
		WHERE id = $4`,
		domain.PayWallet, domain.PaymentPending, intentID, id)
	if err != nil {
		return fmt.Errorf("set payment intent for order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *ordersStore) FindOrderByIntent(ctx context.Context, intentID string) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_intent_id = $1`, intentID)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("payment intent %s: %w", intentID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("find order by intent %s: %w", intentID, err)
	}
	return o, nil
}

func (s *ordersStore) MarkRefunded(ctx context.Context, id int) (domain.Order, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE orders SET refund_status = $1, status = $2
		WHERE id = $3
		RETURNING `+orderColumns,
		domain.RefundRefunded, domain.OrderCancelled, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("mark order %d refunded: %w", id, err)
	}
	return o, nil
}

// Inventory side, see inventory.Stock.

func (s *ordersStore) ItemStock(ctx context.Context, itemID int) (int, bool, error) {
	var qty int
	err := s.q.QueryRowContext(ctx,
		`SELECT quantity FROM menu_items WHERE id = $1`, itemID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return qty, true, nil
}

func (s *ordersStore) UpdateItemStock(ctx context.Context, itemID, qty int) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE menu_items SET quantity = $1 WHERE id = $2`, qty, itemID)
	return err
}

func (s *ordersStore) SetItemAvailability(ctx context.Context, itemID int, available bool) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE menu_items SET is_available = $1 WHERE id = $2`, available, itemID)
	return err
}

func nullableInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
