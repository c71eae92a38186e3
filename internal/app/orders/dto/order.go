package dto

import (
	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

type PlaceOrderRequest struct {
	UserID        int             `json:"user_id"`
	Fullname      string          `json:"fullname"`
	Contact       string          `json:"contact"`
	Location      string          `json:"location"`
	Items         []ItemInput     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status,omitempty"`
}

type UpdateOrderRequest struct {
	// UserID, when present, turns on the ownership check (user edit);
	// admin calls omit it.
	UserID   *int             `json:"user_id,omitempty"`
	Fullname *string          `json:"fullname,omitempty"`
	Contact  *string          `json:"contact,omitempty"`
	Location *string          `json:"location,omitempty"`
	Items    *[]ItemInput     `json:"items,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
	Status   *string          `json:"status,omitempty"`
}

type CancelOrderRequest struct {
	UserID *int `json:"user_id,omitempty"`
}

type RefundResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	OrderID      int             `json:"order_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// ConvertItems maps request lines to snapshot lines.
func ConvertItems(in []ItemInput) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, domain.OrderItem{
			ID:    it.ID,
			Name:  it.Name,
			Qty:   it.Qty,
			Price: it.Price,
		})
	}
	return items
}
