package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/services"
)

// PantryHandler handles pantry stock and threshold requests
type PantryHandler struct {
	pantryService services.PantryService
}

// NewPantryHandler creates a new pantry handler
func NewPantryHandler(pantryService services.PantryService) *PantryHandler {
	return &PantryHandler{
		pantryService: pantryService,
	}
}

// RegisterRoutes registers pantry routes
func (h *PantryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/pantry-stock", h.GetStock).Methods("GET")
	router.HandleFunc("/pantry-stock", h.CreateStock).Methods("POST")
	router.HandleFunc("/pantry-stock/{id:[0-9]+}", h.GetStockItem).Methods("GET")
	router.HandleFunc("/pantry-stock/{id:[0-9]+}", h.UpdateStock).Methods("PUT")
	router.HandleFunc("/pantry-stock/{id:[0-9]+}", h.DeleteStock).Methods("DELETE")
	router.HandleFunc("/thresholds", h.GetThresholds).Methods("GET")
	router.HandleFunc("/thresholds", h.CreateThreshold).Methods("POST")
	router.HandleFunc("/thresholds/{id:[0-9]+}", h.UpdateThreshold).Methods("PUT")
	router.HandleFunc("/thresholds/{id:[0-9]+}", h.DeleteThreshold).Methods("DELETE")
}

// GetStock returns the pantry stock of the caller's families
func (h *PantryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stock, err := h.pantryService.GetStock(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stock)
}

// GetStockItem returns a single pantry stock row
func (h *PantryHandler) GetStockItem(w http.ResponseWriter, r *http.Request) {
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

	stock, err := h.pantryService.GetStockByID(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stock)
}

// CreateStock creates a pantry stock row
func (h *PantryHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var stock models.PantryStock
	if err := json.NewDecoder(r.Body).Decode(&stock); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.pantryService.CreateStock(ac, stock)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateStock updates a pantry stock row
func (h *PantryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
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

	var stock models.PantryStock
	if err := json.NewDecoder(r.Body).Decode(&stock); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.pantryService.UpdateStock(ac, id, stock)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteStock deletes a pantry stock row
func (h *PantryHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pantryService.DeleteStock(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Pantry stock deleted successfully"})
}

// GetThresholds returns the low-stock thresholds of the caller's families
func (h *PantryHandler) GetThresholds(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	thresholds, err := h.pantryService.GetThresholds(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, thresholds)
}

// CreateThreshold creates a low-stock threshold
func (h *PantryHandler) CreateThreshold(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var threshold models.LowStockThreshold
	if err := json.NewDecoder(r.Body).Decode(&threshold); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.pantryService.CreateThreshold(ac, threshold)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateThreshold updates a threshold
func (h *PantryHandler) UpdateThreshold(w http.ResponseWriter, r *http.Request) {
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

	var threshold models.LowStockThreshold
	if err := json.NewDecoder(r.Body).Decode(&threshold); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.pantryService.UpdateThreshold(ac, id, threshold)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteThreshold deletes a threshold
func (h *PantryHandler) DeleteThreshold(w http.ResponseWriter, r *http.Request) {
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

	if err := h.pantryService.DeleteThreshold(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Threshold deleted successfully"})
}
