package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pasarumkm/config"
	"pasarumkm/internal/cartstore"
	"pasarumkm/internal/directory"
	"pasarumkm/internal/events"
	"pasarumkm/internal/handlers"
	"pasarumkm/internal/middleware"
	"pasarumkm/internal/repository"
	"pasarumkm/internal/tracker"
	"pasarumkm/internal/usecase"
	"pasarumkm/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting UMKM marketplace server...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("FATAL: Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Cart storage: Redis when configured, in-process memory otherwise.
	cartTTL := time.Duration(cfg.CartTTLMinutes) * time.Minute
	var cartStore cartstore.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatalf("FATAL: Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		defer redisClient.Close()
		cartStore = cartstore.NewRedisStore(redisClient, cartTTL)
		logger.Infof("Carts stored in Redis at %s", cfg.RedisAddr)
	} else {
		cartStore = cartstore.NewMemoryStore(cartTTL)
		logger.Info("Carts stored in process memory")
	}

	// Event publishing is optional; without a broker the publisher is nil
	// and publishes are no-ops.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		amqpConn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Fatalf("FATAL: Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpConn.Close()

		publisher, err = events.NewPublisher(amqpConn)
		if err != nil {
			logger.Fatalf("FATAL: Failed to set up event publisher: %v", err)
		}
		defer publisher.Close()
		logger.Info("Order events published to RabbitMQ")
	}

	hub := tracker.NewHub(logger)
	loader := directory.NewLoader(cfg.DirectoryPath, cfg.DirectoryURL, logger)

	userRepo := repository.NewPostgresUserRepository(database, logger)
	sessionRepo := repository.NewPostgresSessionRepository(database, logger)
	merchantRepo := repository.NewPostgresMerchantRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	addressRepo := repository.NewPostgresAddressRepository(database, logger)
	favoriteRepo := repository.NewPostgresFavoriteRepository(database, logger)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	userUC := usecase.NewUserUseCase(userRepo, sessionRepo, sessionTTL, logger)
	cartUC := usecase.NewCartUseCase(cartStore, logger)
	catalogUC := usecase.NewCatalogUseCase(merchantRepo, productRepo, loader, logger)
	checkoutUC := usecase.NewCheckoutUseCase(orderRepo, merchantRepo, addressRepo, publisher, hub, logger)
	orderUC := usecase.NewOrderUseCase(orderRepo, publisher, hub, logger)
	merchantUC := usecase.NewMerchantUseCase(merchantRepo, userRepo, logger)
	productUC := usecase.NewProductUseCase(productRepo, merchantRepo, logger)
	addressUC := usecase.NewAddressUseCase(addressRepo, logger)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, merchantRepo, logger)

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	handlers.RegisterRoutes(router, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userUC, logger),
		Catalog:  handlers.NewCatalogHandler(catalogUC, logger),
		Cart:     handlers.NewCartHandler(cartUC, logger),
		Checkout: handlers.NewCheckoutHandler(checkoutUC, cartUC, logger),
		Order:    handlers.NewOrderHandler(orderUC, hub, logger),
		Merchant: handlers.NewMerchantHandler(merchantUC, productUC, orderUC, logger),
		Address:  handlers.NewAddressHandler(addressUC, logger),
		Favorite: handlers.NewFavoriteHandler(favoriteUC, logger),
	}, userUC, logger)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Server listening on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, draining connections...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped cleanly")
}
