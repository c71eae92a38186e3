package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"food-ordering-system/internal/app/orders/dto"
	"food-ordering-system/internal/app/orders/service"
	"food-ordering-system/internal/common/httpx"
	"food-ordering-system/internal/domain"
)

type OrderHandler struct {
	service service.OrderServiceInterface
}

func NewOrderHandler(s service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	order, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"ok":      true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	order, err := h.service.EditOrder(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Order updated successfully",
		"order":   order,
	})
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	// An optional JSON body carries user_id for user-initiated
	// cancellations; admin calls send no body.
	var req dto.CancelOrderRequest
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		_ = json.Unmarshal(body, &req)
	}
	if err := h.service.CancelOrder(r.Context(), id, req.UserID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Order " + strconv.Itoa(id) + " permanently deleted. Stock restored.",
	})
}

func (h *OrderHandler) RefundOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.RefundOrder(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.RefundResponse{
		Success:      true,
		Message:      "Refund processed successfully",
		OrderID:      order.ID,
		RefundAmount: order.Total,
	})
}

func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	order, err := h.service.UpdatePaymentStatus(r.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Payment status updated to " + req.PaymentStatus,
		"order":   order,
	})
}

func (h *OrderHandler) UpdatePaymentProof(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		PaymentProof string `json:"payment_proof"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	order, err := h.service.SetPaymentProof(r.Context(), id, req.PaymentProof)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Payment proof updated successfully",
		"order":   order,
	})
}

func orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid order id")
		return 0, false
	}
	return id, true
}
