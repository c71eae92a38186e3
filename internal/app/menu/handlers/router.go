package handlers

import "net/http"

func Register(mux *http.ServeMux, h *MenuHandler) {
	mux.HandleFunc("GET /menu", h.ListItems)
	mux.HandleFunc("POST /menu", h.CreateItem)
	mux.HandleFunc("GET /menu/{id}", h.GetItem)
	mux.HandleFunc("PUT /menu/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /menu/{id}", h.DeleteItem)
}
