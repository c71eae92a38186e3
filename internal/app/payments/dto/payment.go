package dto

import "time"

type ProcessPaymentRequest struct {
	OrderID       int    `json:"order_id"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type ProcessPaymentResponse struct {
	Success         bool       `json:"success"`
	Message         string     `json:"message"`
	OrderID         int        `json:"order_id"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	CheckoutURL     string     `json:"checkout_url,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

type CallbackRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type CallbackResponse struct {
	Success       bool   `json:"success"`
	OrderID       int    `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	Changed       bool   `json:"changed"`
}

type PaymentStatusResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
	Paid            bool   `json:"paid"`
	Pending         bool   `json:"pending"`
	Failed          bool   `json:"failed"`
}
