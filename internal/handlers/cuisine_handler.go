package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/services"
)

// CuisineHandler handles cuisine and recipe ingredient requests
type CuisineHandler struct {
	cuisineService services.CuisineService
}

// NewCuisineHandler creates a new cuisine handler
func NewCuisineHandler(cuisineService services.CuisineService) *CuisineHandler {
	return &CuisineHandler{
		cuisineService: cuisineService,
	}
}

// RegisterRoutes registers cuisine routes
func (h *CuisineHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cuisines", h.GetCuisines).Methods("GET")
	router.HandleFunc("/cuisines", h.CreateCuisine).Methods("POST")
	router.HandleFunc("/cuisines/{id:[0-9]+}", h.GetCuisine).Methods("GET")
	router.HandleFunc("/cuisines/{id:[0-9]+}", h.UpdateCuisine).Methods("PUT")
	router.HandleFunc("/cuisines/{id:[0-9]+}", h.DeleteCuisine).Methods("DELETE")
	router.HandleFunc("/cuisines/{id:[0-9]+}/ingredients", h.GetRecipeIngredients).Methods("GET")
	router.HandleFunc("/recipe-ingredients", h.AddRecipeIngredient).Methods("POST")
	router.HandleFunc("/recipe-ingredients/{id:[0-9]+}", h.UpdateRecipeIngredient).Methods("PUT")
	router.HandleFunc("/recipe-ingredients/{id:[0-9]+}", h.DeleteRecipeIngredient).Methods("DELETE")
}

// GetCuisines returns the cuisines of the caller's families
func (h *CuisineHandler) GetCuisines(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cuisines, err := h.cuisineService.GetCuisines(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cuisines)
}

// GetCuisine returns a single cuisine with its recipe
func (h *CuisineHandler) GetCuisine(w http.ResponseWriter, r *http.Request) {
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

	cuisine, err := h.cuisineService.GetCuisineByID(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cuisine)
}

// CreateCuisine creates a cuisine
func (h *CuisineHandler) CreateCuisine(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var cuisine models.Cuisine
	if err := json.NewDecoder(r.Body).Decode(&cuisine); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cuisineService.CreateCuisine(ac, cuisine)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateCuisine updates a cuisine
func (h *CuisineHandler) UpdateCuisine(w http.ResponseWriter, r *http.Request) {
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

	var cuisine models.Cuisine
	if err := json.NewDecoder(r.Body).Decode(&cuisine); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.cuisineService.UpdateCuisine(ac, id, cuisine)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteCuisine deletes a cuisine
func (h *CuisineHandler) DeleteCuisine(w http.ResponseWriter, r *http.Request) {
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

	if err := h.cuisineService.DeleteCuisine(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cuisine deleted successfully"})
}

// GetRecipeIngredients returns the recipe rows of a cuisine
func (h *CuisineHandler) GetRecipeIngredients(w http.ResponseWriter, r *http.Request) {
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

	ingredients, err := h.cuisineService.GetRecipeIngredients(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredients)
}

// AddRecipeIngredient attaches an ingredient to a cuisine
func (h *CuisineHandler) AddRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var ri models.RecipeIngredient
	if err := json.NewDecoder(r.Body).Decode(&ri); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cuisineService.AddRecipeIngredient(ac, ri)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateRecipeIngredient updates a recipe row
func (h *CuisineHandler) UpdateRecipeIngredient(w http.ResponseWriter, r *http.Request) {
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

	var ri models.RecipeIngredient
	if err := json.NewDecoder(r.Body).Decode(&ri); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.cuisineService.UpdateRecipeIngredient(ac, id, ri)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecipeIngredient detaches an ingredient from a cuisine
func (h *CuisineHandler) DeleteRecipeIngredient(w http.ResponseWriter, r *http.Request) {
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

	if err := h.cuisineService.DeleteRecipeIngredient(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe ingredient deleted successfully"})
}
