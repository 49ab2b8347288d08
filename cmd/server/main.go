package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/familychef/familychef/internal/api"
	"github.com/familychef/familychef/internal/config"
	"github.com/familychef/familychef/internal/db"
	"github.com/familychef/familychef/internal/notify"
	"github.com/familychef/familychef/internal/services"
	"github.com/familychef/familychef/internal/tasks"
	"github.com/familychef/familychef/internal/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database connection
	database, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Redis client
	redisClient, err := db.ConnectRedis(cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis, using in-process notifications: %v", err)
		redisClient = nil
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	if redisClient != nil {
		go wsHub.RunRedisBridge(context.Background(), redisClient)
	}

	// Pick the notification transport
	publisher := notify.ChooseTransport(cfg.Server.Testing, redisClient, wsHub)

	// Initialize scheduled sweeps
	alertService := services.NewAlertService(database)
	shoppingService := services.NewShoppingService(database, publisher)
	taskManager := tasks.NewManager(alertService, shoppingService)
	taskManager.StartScheduledTasks()

	// Initialize router
	router := api.SetupRouter(database, wsHub, cfg, publisher)

	// Set up CORS
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Apply CORS middleware
	handler := corsMiddleware.Handler(router)

	// Start the server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, handler))
}
