package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/services"
)

// AlertHandler handles alert requests
type AlertHandler struct {
	alertService services.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService services.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// RegisterRoutes registers alert routes
func (h *AlertHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/alerts", h.GetAlerts).Methods("GET")
	router.HandleFunc("/alerts/{id:[0-9]+}/resolve", h.ResolveAlert).Methods("PATCH")
}

// GetAlerts returns the alerts of the caller's families
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	alerts, err := h.alertService.GetAlerts(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

// ResolveAlert marks an alert as resolved
func (h *AlertHandler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
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

	alert, err := h.alertService.ResolveAlert(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
