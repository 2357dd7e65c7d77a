package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/POWERVHD/Viducate-backend/internal/api"
	"github.com/POWERVHD/Viducate-backend/internal/config"
	"github.com/POWERVHD/Viducate-backend/internal/gateway"
	"github.com/POWERVHD/Viducate-backend/internal/media"
	"github.com/POWERVHD/Viducate-backend/internal/observability"
	"github.com/POWERVHD/Viducate-backend/internal/provider"
	"github.com/POWERVHD/Viducate-backend/internal/storage"
)

// @title Viducate Backend API
// @version 1.0.0
// @description Gateway de génération de vidéos narrées (provider D-ID) avec cache de statut et throttling des appels provider
// @host localhost:8000
// @BasePath /api/v1
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Load configuration
	cfg := config.Load()

	if cfg.DIDAPIKey == "" {
		log.Fatal("D_ID_API_KEY is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics
	metrics, metricsHandler, err := observability.NewMetrics(ctx)
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	// Initialize the provider client and the gateway around it
	providerClient := provider.NewClient(cfg.DIDAPIURL, cfg.DIDAPIKey, cfg.Throttle.ProviderTimeout)

	gatewayService := gateway.NewService(providerClient, gateway.Options{
		MinCallInterval: cfg.Throttle.MinCallInterval,
		StatusCacheTTL:  cfg.Throttle.StatusCacheTTL,
		ProviderRecheck: cfg.Throttle.ProviderRecheck,
		PresentersTTL:   cfg.Throttle.PresentersTTL,
	}, gateway.SystemClock(), metrics)

	// Initialize the video archive when enabled
	var videoStore *storage.VideoStore
	if cfg.ArchiveEnabled {
		storageBackend, err := storage.NewStorage(cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize storage:", err)
		}
		videoStore = storage.NewVideoStore(storageBackend)
	}

	mediaService := media.NewService(gatewayService, providerClient, videoStore)

	// Setup router
	router := api.SetupRouter(api.RouterConfig{
		Gateway:           gatewayService,
		Media:             mediaService,
		Metrics:           metrics,
		MetricsHandler:    metricsHandler,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})

	// Start server in goroutine
	log.Printf("Starting viducate-backend on port %s", cfg.Port)
	log.Printf("Provider: %s", cfg.DIDAPIURL)
	log.Printf("Throttle: min interval %s, status TTL %s, recheck %s",
		cfg.Throttle.MinCallInterval, cfg.Throttle.StatusCacheTTL, cfg.Throttle.ProviderRecheck)
	if cfg.ArchiveEnabled {
		log.Printf("Archive: %s storage", cfg.Storage.Type)
		if cfg.Storage.Type == "filesystem" {
			log.Printf("Archive path: %s", cfg.Storage.BasePath)
		}
	} else {
		log.Printf("Archive: disabled")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- router.Run(":" + cfg.Port)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal("Server failed to start:", err)
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
		log.Println("Server shutdown complete")
	}
}
