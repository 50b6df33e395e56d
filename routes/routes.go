package routes

import (
	"log"
	"net/http"

	"gamelytics/handlers"
	"gamelytics/middleware"
	"gamelytics/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	developerHandler *handlers.DeveloperHandler,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	purchaseHandler *handlers.PurchaseHandler,
	achievementHandler *handlers.AchievementHandler,
	reportHandler *handlers.ReportHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Read endpoints (public, like the dashboards that consume them)
		api.GET("/games", gameHandler.List)
		api.GET("/games/:id", gameHandler.GetByID)
		api.GET("/games/:id/achievements", achievementHandler.ListByGame)
		api.GET("/games/:id/achievements/progress/:playerID", achievementHandler.PlayerProgress)
		api.GET("/developers", developerHandler.List)
		api.GET("/developers/:id", developerHandler.GetByID)
		api.GET("/players", playerHandler.List)
		api.GET("/players/:id", playerHandler.GetByID)
		api.GET("/sessions", sessionHandler.List)
		api.GET("/purchases", purchaseHandler.List)

		reports := api.Group("/reports")
		{
			reports.GET("/game-performance", reportHandler.GamePerformance)
			reports.GET("/game-performance/export", reportHandler.ExportGamePerformance)
			reports.GET("/player-engagement", reportHandler.PlayerEngagement)
			reports.GET("/player-engagement/export", reportHandler.ExportPlayerEngagement)
			reports.GET("/developer-success", reportHandler.DeveloperSuccess)
			reports.GET("/developer-success/export", reportHandler.ExportDeveloperSuccess)
		}

		leaderboards := api.Group("/leaderboards")
		{
			leaderboards.GET("/:gameID/top", leaderboardHandler.GetTop)
			leaderboards.GET("/:gameID/players/:playerID", leaderboardHandler.GetPlayerRank)
		}

		// Protected routes (admin mutations)
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			protected.POST("/games", gameHandler.Create)
			protected.PUT("/games/:id", gameHandler.Update)
			protected.DELETE("/games/:id", gameHandler.Delete)

			protected.POST("/developers", developerHandler.Create)
			protected.PUT("/developers/:id", developerHandler.Update)
			protected.DELETE("/developers/:id", developerHandler.Delete)

			protected.POST("/players", playerHandler.Create)
			protected.PUT("/players/:id", playerHandler.Update)
			protected.DELETE("/players/:id", playerHandler.Delete)
			protected.PUT("/players/:id/profile", playerHandler.UpsertProfile)

			protected.POST("/sessions", sessionHandler.Start)
			protected.POST("/sessions/:id/end", sessionHandler.End)
			protected.DELETE("/sessions/:id", sessionHandler.Delete)

			protected.POST("/purchases", purchaseHandler.Create)
			protected.DELETE("/purchases/:id", purchaseHandler.Delete)

			protected.POST("/achievements", achievementHandler.Create)
			protected.PUT("/achievements/:id", achievementHandler.Update)
			protected.DELETE("/achievements/:id", achievementHandler.Delete)
			protected.POST("/achievements/:id/unlock/:playerID", achievementHandler.Unlock)

			protected.POST("/leaderboards/:gameID/scores", leaderboardHandler.SubmitScore)
			protected.POST("/leaderboards/:gameID/rebuild", leaderboardHandler.Rebuild)
		}
	}

	// WebSocket endpoint: dashboards subscribe for report invalidation notices
	router.GET("/ws/dashboard", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}
		hub.RegisterClient(conn, uuid.NewString())
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
