package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderPending, OrderProcessing},
		{OrderPending, OrderCancelled},
		{OrderProcessing, OrderDelivered},
		{OrderProcessing, OrderCancelled},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Errorf("%s -> %s should be allowed", pair[0], pair[1])
		}
	}

	blocked := [][2]OrderStatus{
		{OrderPending, OrderDelivered},
		{OrderDelivered, OrderProcessing},
		{OrderCancelled, OrderPending},
		{OrderDelivered, OrderCancelled},
	}
	for _, pair := range blocked {
		if CanTransition(pair[0], pair[1]) {
			t.Errorf("%s -> %s should be blocked", pair[0], pair[1])
		}
	}
}

func TestSanitizeItemsClampsLines(t *testing.T) {
	items := []OrderItem{
		{Name: strings.Repeat("x", 300), Qty: 5000, Price: decimal.NewFromInt(1000000)},
		{ID: 2, Name: "", Qty: 0, Price: decimal.NewFromInt(-5)},
	}
	out := SanitizeItems(items)
	if len(out) != 2 {
		t.Fatalf("kept %d lines, want 2", len(out))
	}
	if len(out[0].Name) != 100 {
		t.Errorf("name length = %d, want 100", len(out[0].Name))
	}
	if out[0].Qty != 1000 {
		t.Errorf("qty = %d, want clamped to 1000", out[0].Qty)
	}
	if !out[0].Price.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("price = %s, want clamped to 100000", out[0].Price)
	}
	if out[1].Name != "Unknown Item" {
		t.Errorf("name = %q, want placeholder", out[1].Name)
	}
	if out[1].Qty != 1 {
		t.Errorf("qty = %d, want floored to 1", out[1].Qty)
	}
	if !out[1].Price.Equal(decimal.Zero) {
		t.Errorf("price = %s, want floored to 0", out[1].Price)
	}
}

func TestSanitizeItemsCapsSnapshotSize(t *testing.T) {
	items := make([]OrderItem, 120)
	for i := range items {
		items[i] = OrderItem{ID: i + 1, Name: "Line", Qty: 1, Price: decimal.NewFromInt(10)}
	}
	out := SanitizeItems(items)
	if len(out) != 50 {
		t.Fatalf("kept %d lines, want 50", len(out))
	}
}

func TestInitialPaymentStatus(t *testing.T) {
	if got := InitialPaymentStatus(PayCOD, ""); got != PaymentPaid {
		t.Errorf("cod = %s, want paid", got)
	}
	if got := InitialPaymentStatus(PayWallet, PaymentPaid); got != PaymentPending {
		t.Errorf("wallet = %s, want pending regardless of override", got)
	}
	if got := InitialPaymentStatus(PayCash, ""); got != PaymentPaid {
		t.Errorf("cash default = %s, want paid", got)
	}
	if got := InitialPaymentStatus(PayCash, PaymentPending); got != PaymentPending {
		t.Errorf("cash override = %s, want pending", got)
	}
}
