package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/familychef/familychef/internal/services"
)

// MenuHandler handles menu requests
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// RegisterRoutes registers menu routes
func (h *MenuHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/menu", h.GetMenu).Methods("GET")
}

// GetMenu returns the caller's cuisines annotated with availability
// against current pantry stock
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ac, err := authContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	menu, err := h.menuService.GetMenu(ac)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}
