package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/api"
	"github.com/barbershop/appointments-backend/internal/appointment"
	apphttp "github.com/barbershop/appointments-backend/internal/appointment/http"
	"github.com/barbershop/appointments-backend/internal/auth"
	"github.com/barbershop/appointments-backend/internal/blockedtime"
	blockedhttp "github.com/barbershop/appointments-backend/internal/blockedtime/http"
	"github.com/barbershop/appointments-backend/internal/catalog"
	cataloghttp "github.com/barbershop/appointments-backend/internal/catalog/http"
	"github.com/barbershop/appointments-backend/internal/customer"
	customerhttp "github.com/barbershop/appointments-backend/internal/customer/http"
	"github.com/barbershop/appointments-backend/internal/db"
	"github.com/barbershop/appointments-backend/internal/gallery"
	galleryhttp "github.com/barbershop/appointments-backend/internal/gallery/http"
	"github.com/barbershop/appointments-backend/internal/metrics"
	"github.com/barbershop/appointments-backend/internal/notify"
	"github.com/barbershop/appointments-backend/internal/pkg/ratelimit"
	"github.com/barbershop/appointments-backend/internal/pkg/storage"
	"github.com/barbershop/appointments-backend/internal/settings"
	settingshttp "github.com/barbershop/appointments-backend/internal/settings/http"
	"github.com/barbershop/appointments-backend/internal/user"
	userhttp "github.com/barbershop/appointments-backend/internal/user/http"
	"github.com/barbershop/appointments-backend/internal/voice"
	voicehttp "github.com/barbershop/appointments-backend/internal/voice/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	CORSOrigins  []string
	DB           db.DBTX
	// Health checks database reachability for /healthz. Optional.
	Health     func(ctx context.Context) error
	Redis      *redis.Client // optional; nil disables rate limiting
	Log        *zap.Logger
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	VoiceToken      string
	VoiceRateLimit  int
	VoiceRateWindow time.Duration

	SMSWebhookURL   string
	SMSWebhookToken string
	BusinessPhone   string

	GalleryDir      string
	GalleryMaxBytes int64

	Reminders appointment.ReminderConfig
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	JWTManager   *auth.JWTManager
	Users        user.Service
	Appointments appointment.Service
	Reminders    *appointment.ReminderWorker
	Registry     *prometheus.Registry
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Auth
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Notifications
	var sender notify.Sender = notify.NewLogSender(log)
	if cfg.SMSWebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.SMSWebhookURL, cfg.SMSWebhookToken)
	}
	notifier := notify.NewNotifier(sender, log.Named("notify")).WithBusinessPhone(cfg.BusinessPhone)

	// Staff users
	userService := user.NewService(user.NewPgxRepository(cfg.DB), passwordHasher, log.Named("user"))

	// Shop configuration and catalog
	settingsService := settings.NewService(settings.NewPgxRepository(cfg.DB))
	catalogService := catalog.NewService(catalog.NewPgxRepository(cfg.DB))

	// Customers and blocked times
	customerService := customer.NewService(customer.NewPgxRepository(cfg.DB))
	blockedService := blockedtime.NewService(blockedtime.NewPgxRepository(cfg.DB), log.Named("blockedtime"))

	// Appointments
	appointmentService := appointment.NewService(appointment.Deps{
		Repo:         appointment.NewPgxRepository(cfg.DB),
		Settings:     settingsService,
		Catalog:      catalogService,
		Customers:    customerService,
		BlockedTimes: blockedService,
		Notifier:     notifier,
		Metrics:      bookingMetrics,
		Log:          log.Named("appointment"),
		Now:          cfg.Now,
	})
	reminders := appointment.NewReminderWorker(appointmentService, log.Named("reminders"), cfg.Reminders)

	// Voice assistant
	voiceService := voice.NewService(appointmentService, catalogService, settingsService, log.Named("voice"))

	// Gallery
	store, err := storage.NewLocalStorage(cfg.GalleryDir)
	if err != nil {
		return nil, fmt.Errorf("init gallery storage failed: %w", err)
	}
	galleryService := gallery.NewService(gallery.NewPgxRepository(cfg.DB), store, cfg.GalleryMaxBytes, log.Named("gallery"))

	// Public booking routes are rate limited per client IP when Redis is available.
	var public []gin.HandlerFunc
	if cfg.Redis != nil {
		limiter := ratelimit.New(cfg.Redis, cfg.VoiceRateLimit, cfg.VoiceRateWindow, "ratelimit:public")
		public = append(public, ratelimit.Middleware(limiter, log.Named("ratelimit")))
	} else {
		log.Warn("redis not configured, public booking routes are not rate limited")
	}

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		CORSOrigins:  cfg.CORSOrigins,
		Log:          log.Named("http"),
		JWTManager:   jwtManager,
		Gatherer:     registry,
		Health:       cfg.Health,
		Public:       public,
		VoiceToken:   cfg.VoiceToken,
	}, api.Handlers{
		User:        userhttp.NewHandler(userService, jwtManager),
		Settings:    settingshttp.NewHandler(settingsService),
		Catalog:     cataloghttp.NewHandler(catalogService),
		Customer:    customerhttp.NewHandler(customerService),
		BlockedTime: blockedhttp.NewHandler(blockedService),
		Appointment: apphttp.NewHandler(appointmentService),
		Voice:       voicehttp.NewHandler(voiceService, appointmentService),
		Gallery:     galleryhttp.NewHandler(galleryService),
	})

	return &Container{
		Router:       router,
		JWTManager:   jwtManager,
		Users:        userService,
		Appointments: appointmentService,
		Reminders:    reminders,
		Registry:     registry,
	}, nil
}
