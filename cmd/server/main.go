package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/application"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/auth"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/config"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/database"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/events"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/handler"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/logger"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/middleware"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/repository"
)

const serviceName = "service-marketplace"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.VehicleModel{},
			&repository.BookingModel{},
			&repository.InvoiceModel{},
			&repository.ProviderProfileModel{},
			&repository.ServiceItemModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 24*time.Hour)

	// Initialize Kafka producer
	kafkaProducer := events.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	vehicleRepo := repository.NewGormVehicleRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	invoiceRepo := repository.NewGormInvoiceRepository(db)
	providerRepo := repository.NewGormProviderRepository(db)

	// Initialize application services
	authService := application.NewAuthService(userRepo, userRepo, jwtManager, log)
	vehicleService := application.NewVehicleService(vehicleRepo, log)
	bookingService := application.NewBookingService(bookingRepo, vehicleRepo, userRepo, kafkaProducer, log)
	invoiceService := application.NewInvoiceService(invoiceRepo, bookingRepo, kafkaProducer, log)
	providerService := application.NewProviderService(providerRepo, log)

	// Initialize HTTP handlers
	devMode := cfg.AppEnv == "development"
	authHandler := handler.NewAuthHandler(authService, devMode)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	providerHandler := handler.NewProviderHandler(providerService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	vehicleHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	invoiceHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	providerHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
