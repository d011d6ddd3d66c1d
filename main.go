package main

import (
	"log"

	"quizplay/config"
	"quizplay/handlers"
	"quizplay/middleware"
	"quizplay/models"
	"quizplay/routes"
	"quizplay/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(&models.Quiz{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	catalogService := services.NewCatalogService(db)
	sessionStore := services.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	gameService := services.NewGameService(catalogService, sessionStore)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(catalogService)
	gameHandler := handlers.NewGameHandler(gameService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, quizHandler, gameHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
