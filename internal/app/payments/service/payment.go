package service

import (
	"context"
	"fmt"

	"food-ordering-system/internal/app/payments/dto"
	"food-ordering-system/internal/app/payments/gateway"
	"food-ordering-system/internal/app/payments/repository"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"
)

// OrdersPort is the slice of the order service the payment flow drives:
// reading the order, settling counter payments directly, and resolving
// gateway outcomes against the intent id.
type OrdersPort interface {
	GetOrder(ctx context.Context, id int) (domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) (domain.Order, error)
	AttachPaymentIntent(ctx context.Context, id int, intentID string) error
	ResolvePayment(ctx context.Context, intentID string, status domain.PaymentStatus) (domain.Order, bool, error)
}

type PaymentServiceInterface interface {
	ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest) (dto.ProcessPaymentResponse, error)
	HandleCallback(ctx context.Context, req dto.CallbackRequest) (dto.CallbackResponse, error)
	CheckStatus(ctx context.Context, intentID string) (dto.PaymentStatusResponse, error)
}

type PaymentService struct {
	orders  OrdersPort
	txRepo  repository.TransactionsRepositoryInterface
	gateway gateway.Client
	lg      *logger.Logger
}

func NewPaymentService(orders OrdersPort, txRepo repository.TransactionsRepositoryInterface,
	gw gateway.Client, lg *logger.Logger) PaymentServiceInterface {
	return &PaymentService{orders: orders, txRepo: txRepo, gateway: gw, lg: lg}
}

func (s *PaymentService) ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest) (dto.ProcessPaymentResponse, error) {
	if req.OrderID <= 0 {
		return dto.ProcessPaymentResponse{}, fmt.Errorf("order_id is required: %w", domain.ErrValidation)
	}
	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return dto.ProcessPaymentResponse{}, err
	}
	if order.PaymentStatus == domain.PaymentPaid {
		return dto.ProcessPaymentResponse{
			Success:       true,
			Message:       "order is already paid",
			OrderID:       order.ID,
			PaymentStatus: string(domain.PaymentPaid),
		}, nil
	}

	method := order.PaymentMethod
	if req.PaymentMethod != "" {
		method = domain.PaymentMethod(req.PaymentMethod)
		if !domain.ValidPaymentMethod(method) {
			return dto.ProcessPaymentResponse{}, fmt.Errorf("unsupported payment method %q: %w",
				req.PaymentMethod, domain.ErrValidation)
		}
	}

	if method != domain.PayWallet {
		// Cash and COD settle at the counter or on delivery, no gateway call.
		if _, err := s.orders.UpdatePaymentStatus(ctx, order.ID, domain.PaymentPaid); err != nil {
			return dto.ProcessPaymentResponse{}, err
		}
		return dto.ProcessPaymentResponse{
			Success:       true,
			Message:       fmt.Sprintf("payment recorded for method %s", method),
			OrderID:       order.ID,
			PaymentStatus: string(domain.PaymentPaid),
		}, nil
	}

	intent, err := s.gateway.CreatePayment(ctx, gateway.CreatePaymentRequest{
		OrderID:     order.ID,
		Amount:      order.Total,
		Description: fmt.Sprintf("Order #%d", order.ID),
	})
	if err != nil {
		s.lg.Error("gateway_create_payment_failed", err, map[string]any{"order_id": order.ID})
		return dto.ProcessPaymentResponse{}, err
	}
	if err := s.orders.AttachPaymentIntent(ctx, order.ID, intent.TransactionID); err != nil {
		return dto.ProcessPaymentResponse{}, err
	}

	expires := intent.ExpiresAt
	if _, err := s.txRepo.Insert(ctx, domain.WalletTransaction{
		OrderID:         order.ID,
		TransactionID:   intent.TransactionID,
		ReferenceNumber: intent.ReferenceNumber,
		Amount:          order.Total,
		Status:          domain.PaymentPending,
		CheckoutURL:     intent.CheckoutURL,
		ExpiresAt:       &expires,
	}); err != nil {
		// The transaction log is an audit trail; the checkout session stands
		// even when the insert fails.
		s.lg.Warn("wallet_transaction_log_failed", map[string]any{
			"order_id": order.ID, "payment_intent_id": intent.TransactionID, "reason": err.Error(),
		})
	}

	s.lg.Info("wallet_checkout_created", map[string]any{
		"order_id": order.ID, "payment_intent_id": intent.TransactionID,
		"amount": order.Total.StringFixed(2),
	})
	return dto.ProcessPaymentResponse{
		Success:         true,
		Message:         "complete the payment at the checkout URL",
		OrderID:         order.ID,
		PaymentStatus:   string(domain.PaymentPending),
		PaymentIntentID: intent.TransactionID,
		ReferenceNumber: intent.ReferenceNumber,
		CheckoutURL:     intent.CheckoutURL,
		ExpiresAt:       &expires,
	}, nil
}

// HandleCallback applies a gateway webhook. Replays of the same outcome are
// acknowledged without a second write.
func (s *PaymentService) HandleCallback(ctx context.Context, req dto.CallbackRequest) (dto.CallbackResponse, error) {
	if req.TransactionID == "" {
		return dto.CallbackResponse{}, fmt.Errorf("transaction_id is required: %w", domain.ErrValidation)
	}
	status := domain.PaymentStatus(req.Status)
	if status != domain.PaymentPaid && status != domain.PaymentFailed {
		return dto.CallbackResponse{}, fmt.Errorf("callback status %q, must be 'paid' or 'failed': %w",
			req.Status, domain.ErrValidation)
	}

	order, changed, err := s.orders.ResolvePayment(ctx, req.TransactionID, status)
	if err != nil {
		return dto.CallbackResponse{}, err
	}
	s.recordOutcome(ctx, req.TransactionID, status)

	return dto.CallbackResponse{
		Success:       true,
		OrderID:       order.ID,
		PaymentStatus: string(order.PaymentStatus),
		Changed:       changed,
	}, nil
}

// CheckStatus polls the gateway and writes a final outcome back to the order,
// covering lost webhooks.
func (s *PaymentService) CheckStatus(ctx context.Context, intentID string) (dto.PaymentStatusResponse, error) {
	if intentID == "" {
		return dto.PaymentStatusResponse{}, fmt.Errorf("payment intent id is required: %w", domain.ErrValidation)
	}
	status, err := s.gateway.CheckStatus(ctx, intentID)
	if err != nil {
		return dto.PaymentStatusResponse{}, err
	}

	if status == domain.PaymentPaid || status == domain.PaymentFailed {
		if _, _, err := s.orders.ResolvePayment(ctx, intentID, status); err != nil {
			return dto.PaymentStatusResponse{}, err
		}
		s.recordOutcome(ctx, intentID, status)
	}

	return dto.PaymentStatusResponse{
		PaymentIntentID: intentID,
		Status:          string(status),
		Paid:            status == domain.PaymentPaid,
		Pending:         status == domain.PaymentPending,
		Failed:          status == domain.PaymentFailed,
	}, nil
}

func (s *PaymentService) recordOutcome(ctx context.Context, intentID string, status domain.PaymentStatus) {
	if err := s.txRepo.SetStatus(ctx, intentID, status); err != nil {
		s.lg.Warn("wallet_transaction_update_failed", map[string]any{
			"payment_intent_id": intentID, "reason": err.Error(),
		})
	}
}
