package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/barbershop/appointments-backend/internal/api/middleware"
	apphttp "github.com/barbershop/appointments-backend/internal/appointment/http"
	"github.com/barbershop/appointments-backend/internal/auth"
	blockedhttp "github.com/barbershop/appointments-backend/internal/blockedtime/http"
	cataloghttp "github.com/barbershop/appointments-backend/internal/catalog/http"
	customerhttp "github.com/barbershop/appointments-backend/internal/customer/http"
	galleryhttp "github.com/barbershop/appointments-backend/internal/gallery/http"
	settingshttp "github.com/barbershop/appointments-backend/internal/settings/http"
	"github.com/barbershop/appointments-backend/internal/user"
	userhttp "github.com/barbershop/appointments-backend/internal/user/http"
	voicehttp "github.com/barbershop/appointments-backend/internal/voice/http"
)

// Handlers groups the per-module HTTP handlers mounted under /v1.
type Handlers struct {
	User        *userhttp.Handler
	Settings    *settingshttp.Handler
	Catalog     *cataloghttp.Handler
	Customer    *customerhttp.Handler
	BlockedTime *blockedhttp.Handler
	Appointment *apphttp.Handler
	Voice       *voicehttp.Handler
	Gallery     *galleryhttp.Handler
}

// Config holds what the router needs besides the handlers.
type Config struct {
	IsProduction bool
	CORSOrigins  []string
	Log          *zap.Logger
	JWTManager   *auth.JWTManager
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Health reports whether dependencies (the database) are reachable.
	Health func(ctx context.Context) error
	// Public runs in front of unauthenticated booking routes (voice, availability), e.g. rate limiting.
	Public []gin.HandlerFunc
	// VoiceToken guards the voice routes when set.
	VoiceToken string
}

// NewRouter assembles the global middleware and registers every module's routes.
func NewRouter(cfg Config, h Handlers) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, voicehttp.TokenHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := auth.RequireRole(string(user.RoleAdmin))
	voiceMiddleware := append([]gin.HandlerFunc{voicehttp.RequireToken(cfg.VoiceToken)}, cfg.Public...)

	v1 := r.Group("/v1")
	{
		userhttp.RegisterRoutes(v1, h.User, authMiddleware, adminMiddleware)
		settingshttp.RegisterRoutes(v1, h.Settings, authMiddleware, adminMiddleware)
		cataloghttp.RegisterRoutes(v1, h.Catalog, authMiddleware, adminMiddleware)
		customerhttp.RegisterRoutes(v1, h.Customer, authMiddleware)
		blockedhttp.RegisterRoutes(v1, h.BlockedTime, authMiddleware)
		apphttp.RegisterRoutes(v1, h.Appointment, authMiddleware, cfg.Public...)
		voicehttp.RegisterRoutes(v1, h.Voice, voiceMiddleware...)
		galleryhttp.RegisterRoutes(v1, h.Gallery, authMiddleware, adminMiddleware)
	}

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
