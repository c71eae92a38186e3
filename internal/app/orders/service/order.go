package service

import (
	"context"
	"fmt"

	"food-ordering-system/internal/app/inventory"
	"food-ordering-system/internal/app/orders/dto"
	"food-ordering-system/internal/app/orders/repository"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"
	"food-ordering-system/internal/notify"
)

// listLimit bounds order reads, most-recent-first.
const listLimit = 500

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, id int) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	EditOrder(ctx context.Context, id int, req dto.UpdateOrderRequest) (domain.Order, error)
	CancelOrder(ctx context.Context, id int, requesterID *int) error
	RefundOrder(ctx context.Context, id int) (domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) (domain.Order, error)
	SetPaymentProof(ctx context.Context, id int, proof string) (domain.Order, error)
	AttachPaymentIntent(ctx context.Context, id int, intentID string) error
	ResolvePayment(ctx context.Context, intentID string, status domain.PaymentStatus) (domain.Order, bool, error)
}

// OrderService coordinates the order record store, the inventory ledger and
// the payment status rule. Every multi-step write runs inside one database
// transaction; inventory lines inside it are best-effort.
type OrderService struct {
	repo     repository.OrdersRepositoryInterface
	ledger   *inventory.Ledger
	notifier notify.Notifier
	lg       *logger.Logger
}

func NewOrderService(repo repository.OrdersRepositoryInterface, ledger *inventory.Ledger,
	notifier notify.Notifier, lg *logger.Logger) OrderServiceInterface {
	return &OrderService{repo: repo, ledger: ledger, notifier: notifier, lg: lg}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("at least one item is required: %w", domain.ErrValidation)
	}
	for _, it := range req.Items {
		if it.Qty <= 0 {
			return domain.Order{}, fmt.Errorf("invalid quantity for item %q: %w", it.Name, domain.ErrValidation)
		}
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.PayCash
	}
	if !domain.ValidPaymentMethod(method) {
		return domain.Order{}, fmt.Errorf("unsupported payment method %q: %w", req.PaymentMethod, domain.ErrValidation)
	}

	items := domain.SanitizeItems(dto.ConvertItems(req.Items))
	total := domain.SnapshotTotal(items)
	// The submitted total is never trusted; when present it must match the
	// snapshot or the request is rejected.
	if !req.Total.IsZero() && !req.Total.Equal(total) {
		return domain.Order{}, fmt.Errorf("total %s does not match item total %s: %w",
			req.Total.StringFixed(2), total.StringFixed(2), domain.ErrValidation)
	}

	order := domain.Order{
		UserID:        req.UserID,
		Fullname:      req.Fullname,
		Contact:       req.Contact,
		Location:      req.Location,
		Items:         items,
		Total:         total,
		Status:        domain.OrderPending,
		PaymentMethod: method,
		PaymentStatus: domain.InitialPaymentStatus(method, domain.PaymentStatus(req.PaymentStatus)),
	}

	var created domain.Order
	err := s.repo.RunInTx(ctx, func(st repository.Store) error {
		s.ledger.DecrementAll(ctx, st, items)
		var err error
		created, err = st.InsertOrder(ctx, order)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.lg.Info("order_placed", map[string]any{
		"order_id": created.ID, "user_id": created.UserID,
		"total": created.Total.StringFixed(2), "payment_method": string(method),
	})
	if err := s.notifier.OrderPlaced(ctx, created); err != nil {
		s.lg.Warn("order_notification_failed", map[string]any{"order_id": created.ID, "reason": err.Error()})
	}
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = domain.SanitizeItems(o.Items)
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = domain.SanitizeItems(orders[i].Items)
	}
	return orders, nil
}

func (s *OrderService) EditOrder(ctx context.Context, id int, req dto.UpdateOrderRequest) (domain.Order, error) {
	patch, err := buildPatch(req)
	if err != nil {
		return domain.Order{}, err
	}
	if patch.Empty() {
		return domain.Order{}, fmt.Errorf("no valid fields to update: %w", domain.ErrValidation)
	}

	var updated domain.Order
	err = s.repo.RunInTx(ctx, func(st repository.Store) error {
		current, err := st.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.UserID != nil && current.UserID != *req.UserID {
			return fmt.Errorf("you can only edit your own orders: %w", domain.ErrForbidden)
		}
		if patch.EditsDetails() && !current.Editable() {
			return fmt.Errorf("only orders with %q status can be edited, current status: %s: %w",
				domain.OrderPending, current.Status, domain.ErrInvalidState)
		}
		if patch.Status != nil && *patch.Status != current.Status {
			if !domain.CanTransition(current.Status, *patch.Status) {
				return fmt.Errorf("cannot move order from %s to %s: %w",
					current.Status, *patch.Status, domain.ErrInvalidState)
			}
		}

		// A changed items snapshot nets out to the delta between old and
		// new lines: restore the old snapshot, then decrement the new one.
		if patch.Items != nil {
			s.ledger.RestoreAll(ctx, st, current.Items)
			s.ledger.DecrementAll(ctx, st, *patch.Items)
		}

		updated, err = st.UpdateOrder(ctx, id, patch)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.lg.Info("order_updated", map[string]any{"order_id": updated.ID, "status": string(updated.Status)})
	updated.Items = domain.SanitizeItems(updated.Items)
	return updated, nil
}

// buildPatch validates the edit request. When items change, the total is
// recomputed from the new snapshot; a submitted total must match it.
func buildPatch(req dto.UpdateOrderRequest) (repository.OrderPatch, error) {
	p := repository.OrderPatch{
		Fullname: req.Fullname,
		Contact:  req.Contact,
		Location: req.Location,
	}
	if req.Items != nil {
		items := domain.SanitizeItems(dto.ConvertItems(*req.Items))
		if len(items) == 0 {
			return repository.OrderPatch{}, fmt.Errorf("at least one item is required: %w", domain.ErrValidation)
		}
		total := domain.SnapshotTotal(items)
		if req.Total != nil && !req.Total.Equal(total) {
			return repository.OrderPatch{}, fmt.Errorf("total %s does not match item total %s: %w",
				req.Total.StringFixed(2), total.StringFixed(2), domain.ErrValidation)
		}
		p.Items = &items
		p.Total = &total
	} else if req.Total != nil {
		return repository.OrderPatch{}, fmt.Errorf("total cannot change without items: %w", domain.ErrValidation)
	}
	if req.Status != nil {
		st := domain.OrderStatus(*req.Status)
		if !domain.ValidOrderStatus(st) {
			return repository.OrderPatch{}, fmt.Errorf("invalid order status %q: %w", *req.Status, domain.ErrValidation)
		}
		p.Status = &st
	}
	return p, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, id int, requesterID *int) error {
	err := s.repo.RunInTx(ctx, func(st repository.Store) error {
		current, err := st.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if requesterID != nil && current.UserID != *requesterID {
			return fmt.Errorf("you can only cancel your own orders: %w", domain.ErrForbidden)
		}
		if !current.Deletable() {
			return fmt.Errorf("only %q or %q orders, or refunded orders, can be deleted, current status: %s: %w",
				domain.OrderPending, domain.OrderCancelled, current.Status, domain.ErrInvalidState)
		}

		s.ledger.RestoreAll(ctx, st, current.Items)

		n, err := st.DeleteOrder(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		// Post-condition check: the row must be gone.
		exists, err := st.OrderExists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("order %d still exists after delete: %w", id, domain.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.lg.Info("order_deleted", map[string]any{"order_id": id})
	return nil
}

func (s *OrderService) RefundOrder(ctx context.Context, id int) (domain.Order, error) {
	var refunded domain.Order
	err := s.repo.RunInTx(ctx, func(st repository.Store) error {
		current, err := st.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Refunded() {
			return fmt.Errorf("this order has already been refunded: %w", domain.ErrInvalidState)
		}
		if current.Status == domain.OrderDelivered {
			return fmt.Errorf("cannot refund delivered orders: %w", domain.ErrInvalidState)
		}
		refunded, err = st.MarkRefunded(ctx, id)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.lg.Info("order_refunded", map[string]any{
		"order_id": refunded.ID, "amount": refunded.Total.StringFixed(2),
	})
	// Notification is a side effect; a failure never rolls back the refund.
	if err := s.notifier.RefundProcessed(ctx, refunded); err != nil {
		s.lg.Warn("refund_notification_failed", map[string]any{"order_id": refunded.ID, "reason": err.Error()})
	}
	return refunded, nil
}

// UpdatePaymentStatus is the permissive admin override: any valid value is
// written directly.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) (domain.Order, error) {
	if !domain.ValidPaymentStatus(status) {
		return domain.Order{}, fmt.Errorf("invalid payment status %q, must be 'paid', 'pending' or 'failed': %w",
			status, domain.ErrValidation)
	}
	o, err := s.repo.SetPaymentStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, err
	}
	s.lg.Info("payment_status_updated", map[string]any{"order_id": id, "payment_status": string(status)})
	return o, nil
}

func (s *OrderService) SetPaymentProof(ctx context.Context, id int, proof string) (domain.Order, error) {
	if proof == "" {
		return domain.Order{}, fmt.Errorf("payment proof is required: %w", domain.ErrValidation)
	}
	return s.repo.SetPaymentProof(ctx, id, proof)
}

// AttachPaymentIntent binds a gateway checkout session to the order. The
// order switches to the wallet method with payment pending until the gateway
// resolves the session.
func (s *OrderService) AttachPaymentIntent(ctx context.Context, id int, intentID string) error {
	if intentID == "" {
		return fmt.Errorf("payment intent id is required: %w", domain.ErrValidation)
	}
	if err := s.repo.SetPaymentIntent(ctx, id, intentID); err != nil {
		return err
	}
	s.lg.Info("payment_intent_attached", map[string]any{"order_id": id, "payment_intent_id": intentID})
	return nil
}

// ResolvePayment applies an external payment outcome (webhook, poll) to the
// order carrying the intent. Writing paid twice is a no-op success; a wallet
// success also advances a Pending order to Processing.
func (s *OrderService) ResolvePayment(ctx context.Context, intentID string, status domain.PaymentStatus) (domain.Order, bool, error) {
	if status != domain.PaymentPaid && status != domain.PaymentFailed {
		return domain.Order{}, false, fmt.Errorf("unexpected payment resolution %q: %w", status, domain.ErrValidation)
	}

	var (
		resolved domain.Order
		changed  bool
	)
	err := s.repo.RunInTx(ctx, func(st repository.Store) error {
		found, err := st.FindOrderByIntent(ctx, intentID)
		if err != nil {
			return err
		}
		current, err := st.GetOrderForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		if current.PaymentStatus == status {
			resolved = current
			return nil // idempotent re-delivery
		}
		resolved, err = st.SetPaymentStatus(ctx, current.ID, status)
		if err != nil {
			return err
		}
		changed = true
		if status == domain.PaymentPaid && resolved.Status == domain.OrderPending {
			next := domain.OrderProcessing
			resolved, err = st.UpdateOrder(ctx, resolved.ID, repository.OrderPatch{Status: &next})
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, false, err
	}
	if changed {
		s.lg.Info("payment_resolved", map[string]any{
			"order_id": resolved.ID, "payment_intent_id": intentID, "payment_status": string(status),
		})
	}
	return resolved, changed, nil
}
