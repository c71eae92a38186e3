package handlers

import "net/http"

func Register(mux *http.ServeMux, h *PaymentHandler) {
	mux.HandleFunc("POST /payment/process", h.ProcessPayment)
	mux.HandleFunc("POST /payment/callback", h.PaymentCallback)
	mux.HandleFunc("GET /payment/status/{intent_id}", h.PaymentStatus)
}
