package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/notify"
	"github.com/familychef/familychef/internal/websocket"
)

// WSHandler upgrades subscribers onto per-family event topics
type WSHandler struct {
	hub *websocket.Hub
}

// NewWSHandler creates a new WebSocket handler
func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
	}
}

// RegisterRoutes registers WebSocket routes
func (h *WSHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws/orders/{family_id:[0-9]+}", h.SubscribeOrders)
	router.HandleFunc("/ws/shopping/{family_id:[0-9]+}", h.SubscribeShopping)
}

// SubscribeOrders attaches the connection to the family's order events
func (h *WSHandler) SubscribeOrders(w http.ResponseWriter, r *http.Request) {
	familyID, ok := h.authorizedFamily(w, r)
	if !ok {
		return
	}
	h.hub.Subscribe(notify.OrdersTopic(familyID), w, r)
}

// SubscribeShopping attaches the connection to the family's shopping
// list events
func (h *WSHandler) SubscribeShopping(w http.ResponseWriter, r *http.Request) {
	familyID, ok := h.authorizedFamily(w, r)
	if !ok {
		return
	}
	h.hub.Subscribe(notify.ShoppingTopic(familyID), w, r)
}

// authorizedFamily parses the family ID from the path and verifies the
// caller belongs to that family before any upgrade happens
func (h *WSHandler) authorizedFamily(w http.ResponseWriter, r *http.Request) (uint, bool) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}

	id, err := strconv.ParseUint(mux.Vars(r)["family_id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid family ID", http.StatusBadRequest)
		return 0, false
	}

	familyID := uint(id)
	if !ac.MemberOf(familyID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return 0, false
	}

	return familyID, true
}
