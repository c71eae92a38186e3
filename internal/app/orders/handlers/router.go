package handlers

import "net/http"

// Register mounts the order endpoints on the shared mux.
func Register(mux *http.ServeMux, h *OrderHandler) {
	mux.HandleFunc("POST /orders", h.PlaceOrder)
	mux.HandleFunc("GET /orders", h.ListOrders)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)
	mux.HandleFunc("PUT /orders/{id}", h.UpdateOrder)
	mux.HandleFunc("DELETE /orders/{id}", h.DeleteOrder)
	mux.HandleFunc("POST /orders/{id}/refund", h.RefundOrder)
	mux.HandleFunc("PUT /orders/{id}/payment", h.UpdatePaymentStatus)
	mux.HandleFunc("PUT /orders/{id}/payment-proof", h.UpdatePaymentProof)
}
