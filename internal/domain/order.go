package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCOD    PaymentMethod = "cod"
	PayWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

const RefundRefunded = "refunded"

// OrderItem is one line of the items snapshot frozen into an order at
// placement time. Later menu edits never alter it.
type OrderItem struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

type Order struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	Fullname        string          `json:"fullname"`
	Contact         string          `json:"contact"`
	Location        string          `json:"location"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentProof    *string         `json:"payment_proof"`
	PaymentIntentID *string         `json:"payment_intent_id"`
	RefundStatus    *string         `json:"refund_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Editable reports whether order fields (incl. items) may still change.
func (o *Order) Editable() bool { return o.Status == OrderPending }

// Deletable reports whether the order may be cancelled/hard-deleted.
func (o *Order) Deletable() bool {
	return o.Status == OrderPending || o.Status == OrderCancelled || o.Refunded()
}

// Refundable reports whether a refund may still be issued. Refunds are
// one-way and blocked once the order is delivered.
func (o *Order) Refundable() bool {
	return !o.Refunded() && o.Status != OrderDelivered
}

func (o *Order) Refunded() bool {
	return o.RefundStatus != nil && *o.RefundStatus == RefundRefunded
}

// CanTransition validates the order status machine:
// Pending -> {Processing, Cancelled}, Processing -> {Delivered, Cancelled}.
// Cancelled and Delivered are terminal.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderProcessing || to == OrderCancelled
	case OrderProcessing:
		return to == OrderDelivered || to == OrderCancelled
	default:
		return false
	}
}

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayCOD, PayWallet:
		return true
	}
	return false
}

// Snapshot sanitation bounds. Historical rows may hold malformed payloads;
// every read-back and every write clamps lines to these limits.
const (
	maxSnapshotItems = 50
	maxScanItems     = 100
	maxItemNameLen   = 100
	minItemQty       = 1
	maxItemQty       = 1000
)

var maxItemPrice = decimal.NewFromInt(100000)

// SanitizeItems clamps a snapshot to safe bounds: at most 50 lines kept,
// names truncated to 100 chars, qty clamped to 1..1000 and price to
// 0..100000.
func SanitizeItems(items []OrderItem) []OrderItem {
	if len(items) > maxScanItems {
		items = items[:maxScanItems]
	}
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		if len(out) == maxSnapshotItems {
			break
		}
		if it.ID == 0 {
			it.ID = len(out) + 1
		}
		if it.Name == "" {
			it.Name = "Unknown Item"
		}
		if len(it.Name) > maxItemNameLen {
			it.Name = it.Name[:maxItemNameLen]
		}
		if it.Qty < minItemQty {
			it.Qty = minItemQty
		}
		if it.Qty > maxItemQty {
			it.Qty = maxItemQty
		}
		if it.Price.IsNegative() {
			it.Price = decimal.Zero
		}
		if it.Price.GreaterThan(maxItemPrice) {
			it.Price = maxItemPrice
		}
		out = append(out, it)
	}
	return out
}

// SnapshotTotal computes the order total from its snapshot lines.
func SnapshotTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total.Round(2)
}
