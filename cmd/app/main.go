package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XCypherusX/tbs-api/internal/config"
	"github.com/XCypherusX/tbs-api/internal/db"
	"github.com/XCypherusX/tbs-api/internal/events"
	"github.com/XCypherusX/tbs-api/internal/ground"
	"github.com/XCypherusX/tbs-api/internal/logger"
	"github.com/XCypherusX/tbs-api/internal/mq"
	"github.com/XCypherusX/tbs-api/internal/notify"
	"github.com/XCypherusX/tbs-api/internal/query"
	"github.com/XCypherusX/tbs-api/internal/reconcile"
	"github.com/XCypherusX/tbs-api/internal/reservation"
	"github.com/XCypherusX/tbs-api/internal/server"
	"github.com/XCypherusX/tbs-api/internal/timeslot"
	"github.com/XCypherusX/tbs-api/internal/user"
	"github.com/XCypherusX/tbs-api/internal/wishlist"

	"github.com/redis/go-redis/v9"
)

// @title Ground Booking API
// @version 1.0
// @description API for sports ground reservations and wishlists.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting ground booking service")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	notifier := notify.New(rdb, notify.NewSMTPSender(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
	))
	defer notifier.Close()

	tx := db.NewRunner(database)
	bus := events.NewBus()

	userRepo := user.NewRepository(database)
	groundRepo := ground.NewRepository(database)
	slotRepo := timeslot.NewRepository(database)
	reservationRepo := reservation.NewRepository(database)
	wishlistRepo := wishlist.NewRepository(database)
	queryRepo := query.NewRepository(database)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	groundService := ground.NewService(groundRepo, tx)
	slotService := timeslot.NewService(slotRepo, tx)
	reservationService := reservation.NewService(reservationRepo, groundRepo, slotRepo, tx, bus)
	wishlistService := wishlist.NewService(wishlistRepo, reservationRepo, tx, notifier)
	queryService := query.NewService(queryRepo, groundRepo)

	// Availability sync shares the reservation transaction; the rest run
	// once it has committed.
	bus.Subscribe(wishlistService.OnReservationStateChanged)
	bus.SubscribeAfterCommit("wishlist-notify", wishlistService.NotifyAvailability)

	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatalf("Failed to connect to broker: %v", err)
		}
		defer publisher.Close()
		bus.SubscribeAfterCommit("broker", mq.NewEventForwarder(publisher).Handle)
		logger.Info("Broker publishing enabled", "exchange", cfg.AMQPExchange)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	reconciler := reconcile.New(wishlistService, notifier)
	if err := reconciler.Start(cfg.ReconcileSchedule); err != nil {
		logger.Fatalf("Failed to schedule reconciler: %v", err)
	}

	srv := server.New(cfg, server.Handlers{
		Users:        user.NewHandler(userService),
		Grounds:      ground.NewHandler(groundService),
		TimeSlots:    timeslot.NewHandler(slotService),
		Reservations: reservation.NewHandler(reservationService),
		Wishlist:     wishlist.NewHandler(wishlistService),
		Queries:      query.NewHandler(queryService),
	},
		server.HealthCheck{Name: "postgres", Ping: database.PingContext},
		server.HealthCheck{Name: "redis", Ping: notifier.Ping},
	)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	reconciler.Stop(shutdownCtx)
	cancel()

	logger.Info("Server stopped")
}
