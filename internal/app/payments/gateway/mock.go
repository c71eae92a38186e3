package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"food-ordering-system/internal/domain"

	"github.com/google/uuid"
)

// Mock simulates the wallet provider in memory. It backs local development
// and tests, selected with gateway.mock in the config.
type Mock struct {
	mu       sync.Mutex
	sessions map[string]*mockSession
}

type mockSession struct {
	intent Intent
	status domain.PaymentStatus
}

func NewMock() *Mock {
	return &Mock{sessions: make(map[string]*mockSession)}
}

func (m *Mock) CreatePayment(_ context.Context, req CreatePaymentRequest) (Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	intent := Intent{
		TransactionID:   id,
		ReferenceNumber: fmt.Sprintf("REF-%d-%s", req.OrderID, id[:8]),
		Amount:          req.Amount,
		CheckoutURL:     "https://pay.mock.local/checkout/" + id,
		ExpiresAt:       time.Now().Add(30 * time.Minute),
	}
	m.sessions[id] = &mockSession{intent: intent, status: domain.PaymentPending}
	return intent, nil
}

func (m *Mock) CheckStatus(_ context.Context, transactionID string) (domain.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[transactionID]
	if !ok {
		return "", fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	if s.status == domain.PaymentPending && time.Now().After(s.intent.ExpiresAt) {
		s.status = domain.PaymentFailed
	}
	return s.status, nil
}

// SettlePayment flips a pending session to its final status. Tests drive the
// simulated user through this after "completing" checkout.
func (m *Mock) SettlePayment(transactionID string, status domain.PaymentStatus) error {
	if status != domain.PaymentPaid && status != domain.PaymentFailed {
		return fmt.Errorf("status %q: %w", status, domain.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[transactionID]
	if !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, domain.ErrNotFound)
	}
	s.status = status
	return nil
}
