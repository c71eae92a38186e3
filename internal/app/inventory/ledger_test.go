package inventory

import (
	"context"
	"errors"
	"testing"

	"food-ordering-system/internal/common/logger"
	"food-ordering-system/internal/domain"
)

type fakeStock struct {
	qty       map[int]int
	available map[int]bool
	failOn    int // item id whose writes fail
}

func newFakeStock() *fakeStock {
	return &fakeStock{qty: map[int]int{}, available: map[int]bool{}}
}

func (f *fakeStock) ItemStock(_ context.Context, itemID int) (int, bool, error) {
	q, ok := f.qty[itemID]
	return q, ok, nil
}

func (f *fakeStock) UpdateItemStock(_ context.Context, itemID, qty int) error {
	if itemID == f.failOn {
		return errors.New("write failed")
	}
	f.qty[itemID] = qty
	return nil
}

func (f *fakeStock) SetItemAvailability(_ context.Context, itemID int, available bool) error {
	f.available[itemID] = available
	return nil
}

func TestDecrementFloorsAtZero(t *testing.T) {
	st := newFakeStock()
	st.qty[1] = 3
	st.available[1] = true
	l := NewLedger(logger.New("test"))

	if err := l.Decrement(context.Background(), st, 1, 5); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if st.qty[1] != 0 {
		t.Errorf("qty = %d, want 0", st.qty[1])
	}
	if st.available[1] {
		t.Error("item should be unavailable at zero stock")
	}
}

func TestDecrementUnknownItem(t *testing.T) {
	st := newFakeStock()
	l := NewLedger(logger.New("test"))

	err := l.Decrement(context.Background(), st, 99, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRestoreFlipsAvailability(t *testing.T) {
	st := newFakeStock()
	st.qty[7] = 0
	st.available[7] = false
	l := NewLedger(logger.New("test"))

	if err := l.Restore(context.Background(), st, 7, 4); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if st.qty[7] != 4 {
		t.Errorf("qty = %d, want 4", st.qty[7])
	}
	if !st.available[7] {
		t.Error("item should be available after restock")
	}
}

func TestRestoreKeepsAvailabilityWhenNonZero(t *testing.T) {
	st := newFakeStock()
	st.qty[7] = 2
	st.available[7] = true
	l := NewLedger(logger.New("test"))

	if err := l.Restore(context.Background(), st, 7, 3); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if st.qty[7] != 5 {
		t.Errorf("qty = %d, want 5", st.qty[7])
	}
}

func TestDecrementRestoreRoundTrip(t *testing.T) {
	st := newFakeStock()
	st.qty[1] = 10
	st.available[1] = true
	l := NewLedger(logger.New("test"))
	ctx := context.Background()

	items := []domain.OrderItem{{ID: 1, Qty: 3}}
	l.DecrementAll(ctx, st, items)
	if st.qty[1] != 7 {
		t.Fatalf("after decrement qty = %d, want 7", st.qty[1])
	}
	l.RestoreAll(ctx, st, items)
	if st.qty[1] != 10 {
		t.Fatalf("after restore qty = %d, want 10", st.qty[1])
	}
}

func TestBestEffortSkipsFailingLines(t *testing.T) {
	st := newFakeStock()
	st.qty[1] = 10
	st.qty[2] = 10
	st.failOn = 1
	l := NewLedger(logger.New("test"))

	l.DecrementAll(context.Background(), st, []domain.OrderItem{
		{ID: 1, Qty: 2},
		{ID: 2, Qty: 2},
		{ID: 404, Qty: 2}, // vanished item, logged and skipped
	})
	if st.qty[1] != 10 {
		t.Errorf("failing line must leave stock untouched, qty = %d", st.qty[1])
	}
	if st.qty[2] != 8 {
		t.Errorf("healthy line must still apply, qty = %d, want 8", st.qty[2])
	}
}
