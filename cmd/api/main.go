package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/handler"
	"backend/internal/logger"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/storage"
	"backend/internal/websocket"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newStore(appLog *zap.Logger) (storage.Store, error) {
	switch envOr("STORE_BACKEND", "badger") {
	case "postgres":
		dsn := "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
			"@" + envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432") +
			"/" + envOr("DB_NAME", "procurement_hub") + "?sslmode=" + envOr("DB_SSLMODE", "disable")
		return storage.NewGormStore(dsn, appLog)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewBadgerStore(storage.BadgerConfig{
			Path:       envOr("DATA_DIR", "data"),
			SyncWrites: true,
		}, appLog)
	}
}

// @title           Procurement Hub API
// @version         1.0
// @description     Purchase request lifecycle, settings and analytics API backed by a local snapshot store.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	appLog, err := logger.New(envOr("APP_ENV", "development"))
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer appLog.Sync()

	store, err := newStore(appLog)
	if err != nil {
		appLog.Fatal("store init failed", zap.Error(err))
	}
	defer store.Close()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(appLog)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	prRepo := repository.NewPurchaseRequestRepository(store, appLog)
	prRepo.Init(envOr("SEED_ON_EMPTY", "true") == "true")

	settingsService := service.NewSettingsService(store, wsHub, appLog)
	prService := service.NewPurchaseRequestService(prRepo, wsHub, appLog)
	analyticsService := service.NewAnalyticsService(prRepo)
	transferService := service.NewTransferService(prRepo, settingsService, appLog)

	// Initialize Handlers
	prHandler := handler.NewPurchaseRequestHandler(prService)
	approvalHandler := handler.NewApprovalHandler(prService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	transferHandler := handler.NewTransferHandler(transferService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(envOr("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"), ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	prHandler.RegisterRoutes(router.Group(""))
	approvalHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))
	analyticsHandler.RegisterRoutes(router.Group(""))
	transferHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")
	appLog.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		appLog.Fatal("server failed", zap.Error(err))
	}
}
