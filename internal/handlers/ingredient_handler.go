package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/services"
)

// IngredientHandler handles ingredient requests
type IngredientHandler struct {
	ingredientService services.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// RegisterRoutes registers ingredient routes
func (h *IngredientHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ingredients", h.GetIngredients).Methods("GET")
	router.HandleFunc("/ingredients", h.CreateIngredient).Methods("POST")
	router.HandleFunc("/ingredients/{id:[0-9]+}", h.GetIngredient).Methods("GET")
	router.HandleFunc("/ingredients/{id:[0-9]+}", h.UpdateIngredient).Methods("PUT")
	router.HandleFunc("/ingredients/{id:[0-9]+}", h.DeleteIngredient).Methods("DELETE")
}

// GetIngredients returns all ingredients
func (h *IngredientHandler) GetIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredientService.GetIngredients()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredients)
}

// GetIngredient returns a single ingredient
func (h *IngredientHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	ingredient, err := h.ingredientService.GetIngredientByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredient)
}

// CreateIngredient creates a new ingredient
func (h *IngredientHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var ingredient models.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&ingredient); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.ingredientService.CreateIngredient(ingredient)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateIngredient updates an ingredient
func (h *IngredientHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var ingredient models.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&ingredient); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.ingredientService.UpdateIngredient(id, ingredient)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteIngredient deletes an ingredient
func (h *IngredientHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.ingredientService.DeleteIngredient(id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Ingredient deleted successfully"})
}
