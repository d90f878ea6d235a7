package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/app"
	"github.com/barbershop/appointments-backend/internal/appointment"
	"github.com/barbershop/appointments-backend/internal/config"
	"github.com/barbershop/appointments-backend/internal/db"
	"github.com/barbershop/appointments-backend/internal/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	if cfg.EnvFileErr != nil {
		zl.Debug("no .env file loaded", zap.Error(cfg.EnvFileErr))
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations || *migrateOnly {
		if err := db.RunMigrations(pool, zl.Named("migrate")); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
		if *migrateOnly {
			return
		}
	}

	// Redis is optional
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zl.Warn("redis unreachable, rate limiter will fail open", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:    cfg.IsProduction,
		CORSOrigins:     cfg.CORSOrigins,
		DB:              pool,
		Health:          pool.Ping,
		Redis:           rdb,
		Log:             zl,
		JWTSecret:       cfg.JWTSecret,
		JWTTTL:          cfg.JWTAccessTokenTTL,
		BcryptCost:      cfg.BcryptCost,
		VoiceToken:      cfg.VoiceToken,
		VoiceRateLimit:  cfg.VoiceRateLimit,
		VoiceRateWindow: cfg.VoiceRateWindow,
		SMSWebhookURL:   cfg.SMSWebhookURL,
		SMSWebhookToken: cfg.SMSWebhookToken,
		BusinessPhone:   cfg.BusinessPhone,
		GalleryDir:      cfg.GalleryDir,
		GalleryMaxBytes: cfg.GalleryMaxBytes,
		Reminders: appointment.ReminderConfig{
			Interval: cfg.ReminderInterval,
			Lead:     cfg.ReminderLead,
		},
	})
	if err != nil {
		zl.Fatal("failed to init application", zap.Error(err))
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := container.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zl.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	// Reminder loop stops with the signal context
	go container.Reminders.Run(ctx)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
