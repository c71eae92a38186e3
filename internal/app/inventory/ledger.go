package inventory

import (
	"context"
	"fmt"

	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"
)

// Stock is the persistence surface the ledger mutates. The orders store
// implements it bound to the enclosing transaction, so ledger writes commit
// or roll back together with the order mutation.
type Stock interface {
	ItemStock(ctx context.Context, itemID int) (qty int, found bool, err error)
	UpdateItemStock(ctx context.Context, itemID, qty int) error
	SetItemAvailability(ctx context.Context, itemID int, available bool) error
}

// Ledger owns per-item stock arithmetic: decrement floors at zero and flips
// the availability flag off when stock runs out; restore flips it back on
// when stock returns.
type Ledger struct {
	lg *logger.Logger
}

func NewLedger(lg *logger.Logger) *Ledger { return &Ledger{lg: lg} }

// Decrement reduces an item's stock by qty, never below zero.
func (l *Ledger) Decrement(ctx context.Context, st Stock, itemID, qty int) error {
	current, found, err := st.ItemStock(ctx, itemID)
	if err != nil {
		return fmt.Errorf("read stock for item %d: %w", itemID, err)
	}
	if !found {
		return fmt.Errorf("menu item %d: %w", itemID, domain.ErrNotFound)
	}

	newQty := current - qty
	if newQty < 0 {
		newQty = 0
	}
	if err := st.UpdateItemStock(ctx, itemID, newQty); err != nil {
		return fmt.Errorf("update stock for item %d: %w", itemID, err)
	}
	if newQty == 0 {
		if err := st.SetItemAvailability(ctx, itemID, false); err != nil {
			return fmt.Errorf("mark item %d unavailable: %w", itemID, err)
		}
	}
	return nil
}

// Restore adds qty back to an item's stock, the symmetric partner to
// Decrement. An item that was sold out becomes available again.
func (l *Ledger) Restore(ctx context.Context, st Stock, itemID, qty int) error {
	current, found, err := st.ItemStock(ctx, itemID)
	if err != nil {
		return fmt.Errorf("read stock for item %d: %w", itemID, err)
	}
	if !found {
		return fmt.Errorf("menu item %d: %w", itemID, domain.ErrNotFound)
	}

	newQty := current + qty
	if err := st.UpdateItemStock(ctx, itemID, newQty); err != nil {
		return fmt.Errorf("update stock for item %d: %w", itemID, err)
	}
	if current == 0 && newQty > 0 {
		if err := st.SetItemAvailability(ctx, itemID, true); err != nil {
			return fmt.Errorf("mark item %d available: %w", itemID, err)
		}
	}
	return nil
}

// DecrementAll applies Decrement per snapshot line, best-effort: a failing
// line (vanished item, write error) is logged and skipped so checkout never
// blocks on stock drift.
func (l *Ledger) DecrementAll(ctx context.Context, st Stock, items []domain.OrderItem) {
	for _, it := range items {
		if it.ID == 0 || it.Qty <= 0 {
			continue
		}
		if err := l.Decrement(ctx, st, it.ID, it.Qty); err != nil {
			l.lg.Warn("stock_decrement_skipped", map[string]any{"item_id": it.ID, "qty": it.Qty, "reason": err.Error()})
		}
	}
}

// RestoreAll applies Restore per snapshot line, best-effort like DecrementAll.
func (l *Ledger) RestoreAll(ctx context.Context, st Stock, items []domain.OrderItem) {
	for _, it := range items {
		if it.ID == 0 || it.Qty <= 0 {
			continue
		}
		if err := l.Restore(ctx, st, it.ID, it.Qty); err != nil {
			l.lg.Warn("stock_restore_skipped", map[string]any{"item_id": it.ID, "qty": it.Qty, "reason": err.Error()})
		}
	}
}
