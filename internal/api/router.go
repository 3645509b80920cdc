package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/salon-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/salon-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
	salonHttp "github.com/nekogravitycat/salon-booking-backend/internal/salon/http"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
	workerHttp "github.com/nekogravitycat/salon-booking-backend/internal/worker/http"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries what the router needs to assemble handlers.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Lang           string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *zap.Logger
	DB             Pinger

	SalonService   salon.Service
	WorkerService  worker.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, logging, rate limiting) and registers module routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", healthz(cfg.DB, cfg.Logger))

	salonHandler := salonHttp.NewHandler(cfg.SalonService)
	workerHandler := workerHttp.NewHandler(cfg.WorkerService, cfg.Lang)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Lang)

	writeLimit := RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	v1 := r.Group("/v1")
	{
		salonHttp.RegisterRoutes(v1, salonHandler)
		workerHttp.RegisterRoutes(v1, workerHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, writeLimit)
	}

	return r
}

func healthz(db Pinger, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Error("health check: database ping failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
