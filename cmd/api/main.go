// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/coffeebean-backend/internal/config"
	"github.com/your-org/coffeebean-backend/internal/domain/branch"
	"github.com/your-org/coffeebean-backend/internal/domain/cart"
	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
	"github.com/your-org/coffeebean-backend/internal/domain/checkout"
	"github.com/your-org/coffeebean-backend/internal/domain/favorites"
	"github.com/your-org/coffeebean-backend/internal/domain/order"
	"github.com/your-org/coffeebean-backend/internal/domain/pricing"
	"github.com/your-org/coffeebean-backend/internal/infrastructure/database/redis"
	firestoreinfra "github.com/your-org/coffeebean-backend/internal/infrastructure/firestore"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http/routes"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	ctx := context.Background()

	// Connect to Firestore
	fs, err := firestoreinfra.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fs.Close()

	// Initialize Firebase Auth
	verifier, err := auth.NewFirebaseAuth(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Wire stores and services
	productStore := firestoreinfra.NewProductStore(fs)
	branchStore := firestoreinfra.NewBranchStore(fs)
	cartStore := firestoreinfra.NewCartStore(fs, logger)
	orderStore := firestoreinfra.NewOrderStore(fs)
	favoriteStore := firestoreinfra.NewFavoriteStore(fs)

	pricingCfg := pricing.Config{
		FreeDeliveryThreshold: cfg.Checkout.FreeDeliveryThreshold,
		DeliveryFee:           cfg.Checkout.DeliveryFee,
	}

	catalogService := catalog.NewService(productStore, redisClient, logger)
	branchService := branch.NewService(branchStore, redisClient, logger)
	cartService := cart.NewService(cartStore, logger)
	checkoutService := checkout.NewService(cartService, orderStore, pricingCfg, logger)
	orderService := order.NewService(orderStore)
	favoriteService := favorites.NewService(favoriteStore, logger)

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, fs, redisClient.GetClient(), routes.Dependencies{
		Verifier:        verifier,
		CatalogService:  catalogService,
		BranchService:   branchService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		OrderService:    orderService,
		FavoriteService: favoriteService,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
