package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"food-ordering-system/internal/app/payments/dto"
	"food-ordering-system/internal/app/payments/gateway"
	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

type fakeOrders struct {
	orders  map[int]domain.Order
	intents map[string]int
}

func newFakeOrders(orders ...domain.Order) *fakeOrders {
	f := &fakeOrders{orders: make(map[int]domain.Order), intents: make(map[string]int)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) GetOrder(_ context.Context, id int) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

func (f *fakeOrders) UpdatePaymentStatus(_ context.Context, id int, status domain.PaymentStatus) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	o.PaymentStatus = status
	f.orders[id] = o
	return o, nil
}

func (f *fakeOrders) AttachPaymentIntent(_ context.Context, id int, intentID string) error {
	o, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	o.PaymentMethod = domain.PayWallet
	o.PaymentStatus = domain.PaymentPending
	o.PaymentIntentID = &intentID
	f.orders[id] = o
	f.intents[intentID] = id
	return nil
}

func (f *fakeOrders) ResolvePayment(_ context.Context, intentID string, status domain.PaymentStatus) (domain.Order, bool, error) {
	id, ok := f.intents[intentID]
	if !ok {
		return domain.Order{}, false, fmt.Errorf("payment intent %s: %w", intentID, domain.ErrNotFound)
	}
	o := f.orders[id]
	if o.PaymentStatus == status {
		return o, false, nil
	}
	o.PaymentStatus = status
	if status == domain.PaymentPaid && o.Status == domain.OrderPending {
		o.Status = domain.OrderProcessing
	}
	f.orders[id] = o
	return o, true, nil
}

type fakeTxRepo struct {
	inserted []domain.WalletTransaction
	statuses map[string]domain.PaymentStatus
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{statuses: make(map[string]domain.PaymentStatus)}
}

func (f *fakeTxRepo) Insert(_ context.Context, tx domain.WalletTransaction) (domain.WalletTransaction, error) {
	tx.ID = len(f.inserted) + 1
	f.inserted = append(f.inserted, tx)
	f.statuses[tx.TransactionID] = tx.Status
	return tx, nil
}

func (f *fakeTxRepo) GetByTransactionID(_ context.Context, transactionID string) (domain.WalletTransaction, error) {
	for _, tx := range f.inserted {
		if tx.TransactionID == transactionID {
			return tx, nil
		}
	}
	return domain.WalletTransaction{}, fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
}

func (f *fakeTxRepo) SetStatus(_ context.Context, transactionID string, status domain.PaymentStatus) error {
	if _, ok := f.statuses[transactionID]; !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	f.statuses[transactionID] = status
	return nil
}

func pendingOrder(id int, method domain.PaymentMethod) domain.Order {
	return domain.Order{
		ID:            id,
		UserID:        7,
		Status:        domain.OrderPending,
		PaymentMethod: method,
		PaymentStatus: domain.PaymentPending,
		Total:         decimal.NewFromInt(360),
	}
}

func newTestPayments(orders *fakeOrders, txRepo *fakeTxRepo, gw gateway.Client) PaymentServiceInterface {
	return NewPaymentService(orders, txRepo, gw, logger.New("test"))
}

func TestProcessPaymentCODSettlesWithoutGateway(t *testing.T) {
	orders := newFakeOrders(pendingOrder(1, domain.PayCOD))
	mock := gateway.NewMock()
	svc := newTestPayments(orders, newFakeTxRepo(), mock)

	resp, err := svc.ProcessPayment(context.Background(), dto.ProcessPaymentRequest{OrderID: 1})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if resp.PaymentStatus != string(domain.PaymentPaid) {
		t.Errorf("payment status = %s, want paid", resp.PaymentStatus)
	}
	if resp.CheckoutURL != "" {
		t.Error("COD payment must not open a checkout session")
	}
	if orders.orders[1].PaymentStatus != domain.PaymentPaid {
		t.Errorf("order payment status = %s, want paid", orders.orders[1].PaymentStatus)
	}
}

func TestProcessPaymentAlreadyPaidIdempotent(t *testing.T) {
	paid := pendingOrder(1, domain.PayCash)
	paid.PaymentStatus = domain.PaymentPaid
	orders := newFakeOrders(paid)
	svc := newTestPayments(orders, newFakeTxRepo(), gateway.NewMock())

	resp, err := svc.ProcessPayment(context.Background(), dto.ProcessPaymentRequest{OrderID: 1})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if !resp.Success || resp.PaymentStatus != string(domain.PaymentPaid) {
		t.Errorf("resp = %+v, want success with status paid", resp)
	}
}

func TestProcessPaymentWalletCreatesCheckout(t *testing.T) {
	orders := newFakeOrders(pendingOrder(1, domain.PayWallet))
	txRepo := newFakeTxRepo()
	svc := newTestPayments(orders, txRepo, gateway.NewMock())

	resp, err := svc.ProcessPayment(context.Background(), dto.ProcessPaymentRequest{OrderID: 1})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if resp.PaymentIntentID == "" || resp.CheckoutURL == "" {
		t.Fatalf("resp = %+v, want intent id and checkout url", resp)
	}
	if resp.PaymentStatus != string(domain.PaymentPending) {
		t.Errorf("payment status = %s, want pending", resp.PaymentStatus)
	}

	got := orders.orders[1]
	if got.PaymentIntentID == nil || *got.PaymentIntentID != resp.PaymentIntentID {
		t.Error("intent not attached to the order")
	}
	if len(txRepo.inserted) != 1 {
		t.Fatalf("logged %d transactions, want 1", len(txRepo.inserted))
	}
	if txRepo.inserted[0].Status != domain.PaymentPending {
		t.Errorf("logged status = %s, want pending", txRepo.inserted[0].Status)
	}
}

func TestCallbackResolvesOrder(t *testing.T) {
	orders := newFakeOrders(pendingOrder(1, domain.PayWallet))
	txRepo := newFakeTxRepo()
	svc := newTestPayments(orders, txRepo, gateway.NewMock())

	created, err := svc.ProcessPayment(context.Background(), dto.ProcessPaymentRequest{OrderID: 1})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	resp, err := svc.HandleCallback(context.Background(), dto.CallbackRequest{
		TransactionID: created.PaymentIntentID, Status: string(domain.PaymentPaid),
	})
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if !resp.Changed || resp.PaymentStatus != string(domain.PaymentPaid) {
		t.Errorf("resp = %+v, want changed with status paid", resp)
	}
	if orders.orders[1].Status != domain.OrderProcessing {
		t.Errorf("order status = %s, want Processing", orders.orders[1].Status)
	}
	if txRepo.statuses[created.PaymentIntentID] != domain.PaymentPaid {
		t.Error("transaction log not updated to paid")
	}

	replay, err := svc.HandleCallback(context.Background(), dto.CallbackRequest{
		TransactionID: created.PaymentIntentID, Status: string(domain.PaymentPaid),
	})
	if err != nil {
		t.Fatalf("HandleCallback replay: %v", err)
	}
	if replay.Changed {
		t.Error("replayed callback should be a no-op")
	}
}

func TestCallbackRejectsNonFinalStatus(t *testing.T) {
	svc := newTestPayments(newFakeOrders(), newFakeTxRepo(), gateway.NewMock())

	_, err := svc.HandleCallback(context.Background(), dto.CallbackRequest{
		TransactionID: "txn-1", Status: string(domain.PaymentPending),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCheckStatusWritesBackPaid(t *testing.T) {
	orders := newFakeOrders(pendingOrder(1, domain.PayWallet))
	mock := gateway.NewMock()
	svc := newTestPayments(orders, newFakeTxRepo(), mock)

	created, err := svc.ProcessPayment(context.Background(), dto.ProcessPaymentRequest{OrderID: 1})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	status, err := svc.CheckStatus(context.Background(), created.PaymentIntentID)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if !status.Pending {
		t.Fatalf("status = %+v, want pending before settlement", status)
	}
	if orders.orders[1].PaymentStatus != domain.PaymentPending {
		t.Error("order touched while gateway still pending")
	}

	if err := mock.SettlePayment(created.PaymentIntentID, domain.PaymentPaid); err != nil {
		t.Fatalf("SettlePayment: %v", err)
	}
	status, err = svc.CheckStatus(context.Background(), created.PaymentIntentID)
	if err != nil {
		t.Fatalf("CheckStatus after settle: %v", err)
	}
	if !status.Paid {
		t.Fatalf("status = %+v, want paid", status)
	}
	if orders.orders[1].PaymentStatus != domain.PaymentPaid {
		t.Error("poll outcome not written back to the order")
	}
}

func TestCheckStatusUnknownIntent(t *testing.T) {
	svc := newTestPayments(newFakeOrders(), newFakeTxRepo(), gateway.NewMock())

	if _, err := svc.CheckStatus(context.Background(), "no-such-intent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
