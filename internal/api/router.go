package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/config"
	"github.com/familychef/familychef/internal/handlers"
	"github.com/familychef/familychef/internal/middleware"
	"github.com/familychef/familychef/internal/notify"
	"github.com/familychef/familychef/internal/services"
	"github.com/familychef/familychef/internal/websocket"
	"github.com/familychef/familychef/web"
)

// SetupRouter configures all routes and returns the router
func SetupRouter(
	db *gorm.DB,
	wsHub *websocket.Hub,
	cfg *config.Config,
	publisher notify.Publisher,
) *mux.Router {
	// Create a new router
	router := mux.NewRouter()

	// Add health check endpoint
	router.HandleFunc("/api/health", HealthHandler).Methods("GET")

	// Create services
	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	familyService := services.NewFamilyService(db)
	ingredientService := services.NewIngredientService(db)
	cuisineService := services.NewCuisineService(db)
	menuService := services.NewMenuService(db)
	pantryService := services.NewPantryService(db)
	orderService := services.NewOrderService(db, pantryService, publisher)
	alertService := services.NewAlertService(db)
	shoppingService := services.NewShoppingService(db, publisher)

	// Create handlers using services
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT.SecretKey)
	userHandler := handlers.NewUserHandler(userService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	cuisineHandler := handlers.NewCuisineHandler(cuisineService)
	menuHandler := handlers.NewMenuHandler(menuService)
	pantryHandler := handlers.NewPantryHandler(pantryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	alertHandler := handlers.NewAlertHandler(alertService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)
	wsHandler := handlers.NewWSHandler(wsHub)

	// Add public endpoints directly to the root router (no authentication required)
	router.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Create the API router for authenticated endpoints
	apiRouter := router.PathPrefix("/api").Subrouter()

	// Create a subrouter for authenticated endpoints
	authRouter := apiRouter.PathPrefix("").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg.JWT.SecretKey, userService, familyService))

	// Register routes
	userHandler.RegisterRoutes(authRouter)
	familyHandler.RegisterRoutes(authRouter)
	ingredientHandler.RegisterRoutes(authRouter)
	cuisineHandler.RegisterRoutes(authRouter)
	menuHandler.RegisterRoutes(authRouter)
	pantryHandler.RegisterRoutes(authRouter)
	orderHandler.RegisterRoutes(authRouter)
	alertHandler.RegisterRoutes(authRouter)
	shoppingHandler.RegisterRoutes(authRouter)

	// WebSocket routes; membership is checked before the upgrade
	wsRouter := router.PathPrefix("").Subrouter()
	wsRouter.Use(middleware.AuthMiddleware(cfg.JWT.SecretKey, userService, familyService))
	wsHandler.RegisterRoutes(wsRouter)

	// Serve the embedded PWA assets
	fileServer := http.FileServer(web.GetFileSystem())
	router.PathPrefix("/static/").Handler(fileServer)
	router.Handle("/manifest.json", fileServer)

	// Catch-all handler for serving the SPA
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// For API requests, let the router handle them
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		// For all other requests, serve the index.html file
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})

	return router
}
