package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/models"
	"github.com/familychef/familychef/internal/services"
)

// FamilyHandler handles family and membership requests
type FamilyHandler struct {
	familyService services.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// RegisterRoutes registers family routes
func (h *FamilyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/families", h.GetFamilies).Methods("GET")
	router.HandleFunc("/families", h.CreateFamily).Methods("POST")
	router.HandleFunc("/families/{id:[0-9]+}", h.GetFamily).Methods("GET")
	router.HandleFunc("/families/{id:[0-9]+}", h.UpdateFamily).Methods("PUT")
	router.HandleFunc("/families/{id:[0-9]+}", h.DeleteFamily).Methods("DELETE")
	router.HandleFunc("/family-members", h.GetMembers).Methods("GET")
	router.HandleFunc("/family-members", h.AddMember).Methods("POST")
	router.HandleFunc("/family-members/{id:[0-9]+}", h.RemoveMember).Methods("DELETE")
}

// GetFamilies returns the caller's families
func (h *FamilyHandler) GetFamilies(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	families, err := h.familyService.GetFamilies(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, families)
}

// GetFamily returns a single family
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
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

	family, err := h.familyService.GetFamilyByID(ac, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, family)
}

// CreateFamily creates a family with the caller as its admin
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var family models.Family
	if err := json.NewDecoder(r.Body).Decode(&family); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.familyService.CreateFamily(ac, family)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateFamily updates a family's name
func (h *FamilyHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
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

	var family models.Family
	if err := json.NewDecoder(r.Body).Decode(&family); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.familyService.UpdateFamily(ac, id, family)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteFamily deletes a family
func (h *FamilyHandler) DeleteFamily(w http.ResponseWriter, r *http.Request) {
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

	if err := h.familyService.DeleteFamily(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Family deleted successfully"})
}

// GetMembers returns memberships of the caller's families
func (h *FamilyHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	members, err := h.familyService.GetMembers(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// AddMember enrolls a user into one of the caller's families
func (h *FamilyHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.FamilyMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.familyService.AddMember(ac, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// RemoveMember removes a membership row
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
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

	if err := h.familyService.RemoveMember(ac, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Family member removed successfully"})
}
