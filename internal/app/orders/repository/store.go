package repository

import (
	"context"

	"food-ordering-system/internal/app/inventory"
	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

// OrderPatch carries the optional fields of an order edit. Nil means
// "leave unchanged".
type OrderPatch struct {
	Fullname *string
	Contact  *string
	Location *string
	Items    *[]domain.OrderItem
	Total    *decimal.Decimal
	Status   *domain.OrderStatus
}

func (p OrderPatch) Empty() bool {
	return p.Fullname == nil && p.Contact == nil && p.Location == nil &&
		p.Items == nil && p.Total == nil && p.Status == nil
}

// EditsDetails reports whether the patch touches anything beyond status.
func (p OrderPatch) EditsDetails() bool {
	return p.Fullname != nil || p.Contact != nil || p.Location != nil ||
		p.Items != nil || p.Total != nil
}

// Store is the persistence surface of one transactional scope. It covers the
// order record store plus the stock operations the inventory ledger needs,
// so a coordinator operation mutates both under a single transaction.
type Store interface {
	inventory.Stock

	GetOrder(ctx context.Context, id int) (domain.Order, error)
	// GetOrderForUpdate reads the row under FOR UPDATE so concurrent
	// coordinator operations on the same order serialize.
	GetOrderForUpdate(ctx context.Context, id int) (domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
	InsertOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	UpdateOrder(ctx context.Context, id int, p OrderPatch) (domain.Order, error)
	DeleteOrder(ctx context.Context, id int) (int64, error)
	OrderExists(ctx context.Context, id int) (bool, error)

	SetPaymentStatus(ctx context.Context, id int, s domain.PaymentStatus) (domain.Order, error)
	SetPaymentProof(ctx context.Context, id int, proof string) (domain.Order, error)
	SetPaymentIntent(ctx context.Context, id int, intentID string) error
	FindOrderByIntent(ctx context.Context, intentID string) (domain.Order, error)
	MarkRefunded(ctx context.Context, id int) (domain.Order, error)
}

// OrdersRepositoryInterface adds the transactional boundary: RunInTx hands
// the callback a Store bound to one database transaction and commits only if
// the callback returns nil.
type OrdersRepositoryInterface interface {
	Store
	RunInTx(ctx context.Context, fn func(Store) error) error
}
