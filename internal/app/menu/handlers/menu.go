package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"food-ordering-system/internal/app/menu/dto"
	"food-ordering-system/internal/app/menu/service"
	"food-ordering-system/internal/common/httpx"
	"food-ordering-system/internal/domain"
)

type MenuHandler struct {
	service service.MenuServiceInterface
}

func NewMenuHandler(s service.MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

func itemID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid menu item id: %w", domain.ErrValidation)
	}
	return id, nil
}

func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req dto.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	item, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "menu item deleted"})
}
