package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"depo-system/config"
	"depo-system/internal/database"
	"depo-system/internal/gateway/handlers"
	"depo-system/internal/gateway/middleware"
	"depo-system/internal/scan"
	"depo-system/internal/store"
	"depo-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.Auth.JWTSecret != "" {
		utils.JwtSecret = []byte(cfg.Auth.JWTSecret)
	}

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)
	itemStore := store.NewGormStore(db)

	acceptanceHandler := handlers.NewAcceptanceHandler(itemStore, redisClient)
	sessionHandler := handlers.NewSessionHandler(scan.NewSessionStore(redisClient))
	reportHandler := handlers.NewReportHandler(itemStore, redisClient)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		acceptanceGroup := protected.Group("/acceptance")
		{
			acceptanceGroup.POST("/pre", acceptanceHandler.PreAcceptance)
			acceptanceGroup.POST("/goods", acceptanceHandler.GoodsAcceptance)
		}

		protected.POST("/addressing/transition", acceptanceHandler.TransitionAddress)

		boxes := protected.Group("/boxes")
		{
			boxes.GET("", acceptanceHandler.ListBoxes)
			boxes.GET("/:box/items", acceptanceHandler.ListBoxItems)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Create)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.POST("/:id/scan", sessionHandler.Scan)
			sessions.POST("/:id/remove", sessionHandler.Remove)
			sessions.POST("/:id/complete", sessionHandler.Complete)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/boxes", reportHandler.Boxes)
			reports.GET("/export", reportHandler.Export)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	port := ":" + cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
