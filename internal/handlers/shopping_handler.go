package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/services"
)

// ShoppingHandler handles shopping list requests
type ShoppingHandler struct {
	shoppingService services.ShoppingService
}

// NewShoppingHandler creates a new shopping list handler
func NewShoppingHandler(shoppingService services.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
	}
}

// RegisterRoutes registers shopping list routes
func (h *ShoppingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/shopping-list", h.GetItems).Methods("GET")
	router.HandleFunc("/shopping-list/{id:[0-9]+}/resolve", h.ResolveItem).Methods("PATCH")
}

// GetItems returns the shopping list entries of the caller's families
func (h *ShoppingHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.shoppingService.GetItems(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// ResolveItem marks a shopping list entry bought
func (h *ShoppingHandler) ResolveItem(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	item, err := h.shoppingService.ResolveItem(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}
