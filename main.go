package main

import (
	"log"
	"log/slog"
	"os"

	"gamelytics/config"
	"gamelytics/handlers"
	"gamelytics/middleware"
	"gamelytics/models"
	"gamelytics/routes"
	"gamelytics/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Developer{},
		&models.Game{},
		&models.Player{},
		&models.PlayerProfile{},
		&models.Session{},
		&models.Purchase{},
		&models.Achievement{},
		&models.PlayerAchievement{},
		&models.Leaderboard{},
		&models.LeaderboardEntity{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Report cache and dashboard hub
	cache := services.NewReportCache()
	hub := services.NewHub()
	go hub.Run()

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	gameService := services.NewGameService(db, cache, hub)
	developerService := services.NewDeveloperService(db, cache, hub)
	playerService := services.NewPlayerService(db, cache, hub)
	sessionService := services.NewSessionService(db, cache, hub)
	purchaseService := services.NewPurchaseService(db, cache, hub)
	achievementService := services.NewAchievementService(db, cache, hub)
	reportService := services.NewReportService(db, cache, logger)
	leaderboardService := services.NewLeaderboardService(db, redisClient, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService)
	developerHandler := handlers.NewDeveloperHandler(developerService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	reportHandler := handlers.NewReportHandler(reportService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Setup routes
	routes.SetupRoutes(
		router,
		authHandler,
		gameHandler,
		developerHandler,
		playerHandler,
		sessionHandler,
		purchaseHandler,
		achievementHandler,
		reportHandler,
		leaderboardHandler,
		hub,
		cfg.JWTSecret,
	)

	// Start server
	addr := cfg.BindAddress + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
