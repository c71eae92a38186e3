package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a sellable item. Quantity is live stock; IsAvailable must be
// true iff quantity > 0 (or tracking is unused and stock was never set).
// Stock is mutated only by the inventory ledger on order placement, edit and
// cancellation.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}
