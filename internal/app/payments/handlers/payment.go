package handlers

import (
	"encoding/json"
	"net/http"

	"food-ordering-system/internal/app/payments/dto"
	"food-ordering-system/internal/app/payments/service"
	"food-ordering-system/internal/common/httpx"
)

type PaymentHandler struct {
	service service.PaymentServiceInterface
}

func NewPaymentHandler(s service.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	resp, err := h.service.ProcessPayment(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var req dto.CallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	resp, err := h.service.HandleCallback(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CheckStatus(r.Context(), r.PathValue("intent_id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
