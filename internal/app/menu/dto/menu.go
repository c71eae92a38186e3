package dto

import "github.com/shopspring/decimal"

type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	IsAvailable *bool           `json:"is_available,omitempty"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
}
