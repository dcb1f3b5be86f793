package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"vinspect/internal/config"
	"vinspect/internal/handlers"
	"vinspect/internal/middleware"
	"vinspect/internal/repositories/mongodb"
	"vinspect/internal/services"
	"vinspect/pkg/cache"
	"vinspect/pkg/database"
	"vinspect/pkg/logger"
	"vinspect/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logger
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Facility timezone governs slot boundaries and operating hours
	facilityZone, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		appLogger.Fatalf("Invalid timezone %q: %v", cfg.App.Timezone, err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancel()
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	inspectionRepo := mongodb.NewInspectionRepository(db.Database, redisCache)
	inspectorRepo := mongodb.NewInspectorRepository(db.Database, redisCache)
	bookingRepo := mongodb.NewBookingRepository(db.Database, redisCache)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, redisCache)
	userRepo := mongodb.NewUserRepository(db.Database, redisCache)

	// Services
	authService := services.NewAuthService(inspectorRepo, redisCache, cfg.Security, appLogger)
	inspectionService := services.NewInspectionService(inspectionRepo, inspectorRepo, vehicleRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, vehicleRepo, userRepo, cfg.Booking, facilityZone, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reportHandler := handlers.NewReportHandler(inspectionService)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, authService)
		routes.SetupInspectionRoutes(v1, inspectionHandler, authService)
		routes.SetupBookingRoutes(v1, bookingHandler, authService)
		routes.SetupReportRoutes(v1, reportHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		}

		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["mongodb"] = err.Error()
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["redis"] = err.Error()
		}

		c.JSON(status, health)
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		appLogger.Fatalf("Server failed: %v", err)
	}
}
