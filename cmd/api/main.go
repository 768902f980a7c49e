package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/solevibe/solevibe-backend/api/routes"
	"github.com/solevibe/solevibe-backend/internal/cart"
	"github.com/solevibe/solevibe-backend/internal/catalog"
	checkoutsvc "github.com/solevibe/solevibe-backend/internal/checkout"
	"github.com/solevibe/solevibe-backend/internal/events"
	"github.com/solevibe/solevibe-backend/internal/giftcards"
	"github.com/solevibe/solevibe-backend/internal/ratings"
	"github.com/solevibe/solevibe-backend/internal/wishlist"
	"github.com/solevibe/solevibe-backend/pkg/config"
	"github.com/solevibe/solevibe-backend/pkg/db"
	"github.com/solevibe/solevibe-backend/pkg/db/models"
	"github.com/solevibe/solevibe-backend/pkg/logger"
	"github.com/solevibe/solevibe-backend/pkg/metrics"
	"github.com/solevibe/solevibe-backend/pkg/redis"
	"github.com/solevibe/solevibe-backend/pkg/square"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap catalog database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing catalog database", err)
		}
	}()

	if cfg.Catalog.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(&models.Product{}); err != nil {
			logg.Error(context.Background(), "failed to migrate catalog schema", err)
			os.Exit(1)
		}
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.Catalog.SeedOnBoot {
		if err := catalog.Seed(context.Background(), catalogRepo, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var squareClient *square.Client
	if cfg.Square.AccessToken != "" {
		squareClient, err = square.NewClient(context.Background(), cfg.Square, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap square client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "square access token not set, checkout runs without payment links")
	}

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartRepo, err := cart.NewRepository(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart repository", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartRepo, catalogService, cfg.Cart, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var paymentLinker checkoutsvc.PaymentLinker
	if squareClient != nil {
		paymentLinker = squareClient
	}
	checkoutService, err := checkoutsvc.NewService(cartService, redisClient, paymentLinker, cfg.Checkout, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	wishlistRepo, err := wishlist.NewRepository(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist repository", err)
		os.Exit(1)
	}
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:     wishlistRepo,
		Products: catalogService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	giftCardService, err := giftcards.NewService(cartService, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create gift card service", err)
		os.Exit(1)
	}

	savedEventsRepo, err := events.NewRepository(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create saved events repository", err)
		os.Exit(1)
	}
	eventsService, err := events.NewService(savedEventsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	ratingsService, err := ratings.NewService(redisClient, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create ratings service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			catalogService,
			cartService,
			checkoutService,
			wishlistService,
			giftCardService,
			eventsService,
			ratingsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
