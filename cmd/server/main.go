package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/idine/internal/auth"
	"github.com/mmynk/idine/internal/config"
	"github.com/mmynk/idine/internal/events"
	"github.com/mmynk/idine/internal/metrics"
	"github.com/mmynk/idine/internal/server"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/internal/storage/redis"
	"github.com/mmynk/idine/internal/storage/sqlite"
	"github.com/mmynk/idine/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	var prefs storage.PreferenceStore = store
	if cfg.RedisAddr != "" {
		rdb, err := redis.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		prefs = redis.NewPreferenceStore(rdb, 0)
		logger.Info("Preferences stored in Redis", "addr", cfg.RedisAddr)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		logger.Info("Publishing order events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer publisher.Close()

	handler, _ := server.NewHandler(server.Options{
		Store:          store,
		Prefs:          prefs,
		Publisher:      publisher,
		Metrics:        metrics.New(),
		JWT:            auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Logger:         logger,
		ClearDelay:     cfg.CheckoutClearDelay,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
