package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransaction is the record of one wallet payment attempt with the
// external gateway, correlated to an order via the transaction id stored as
// the order's payment_intent_id. Never deleted.
type WalletTransaction struct {
	ID              int             `json:"id"`
	OrderID         int             `json:"order_id"`
	TransactionID   string          `json:"transaction_id"`
	ReferenceNumber string          `json:"reference_number"`
	Amount          decimal.Decimal `json:"amount"`
	Status          PaymentStatus   `json:"status"` // pending | paid | failed
	CheckoutURL     string          `json:"checkout_url"`
	ExpiresAt       *time.Time      `json:"expires_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InitialPaymentStatus is the placement-time rule linking a payment method
// to the order's starting payment status. COD is collected on delivery and
// counts as paid immediately; cash defaults to paid (pay at counter) unless
// the caller overrides it; wallet stays pending until the gateway resolves.
func InitialPaymentStatus(method PaymentMethod, override PaymentStatus) PaymentStatus {
	switch method {
	case PayCOD:
		return PaymentPaid
	case PayWallet:
		return PaymentPending
	default:
		if ValidPaymentStatus(override) {
			return override
		}
		return PaymentPaid
	}
}
