package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/salon-booking-backend/internal/api"
	"github.com/nekogravitycat/salon-booking-backend/internal/booking"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/mq"
	"github.com/nekogravitycat/salon-booking-backend/internal/salon"
	"github.com/nekogravitycat/salon-booking-backend/internal/worker"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	Logger         *zap.Logger
	Lang           string
	Location       *time.Location
	RateLimitRPS   float64
	RateLimitBurst int

	EnforceCalendar bool

	// Optional. A nil cache disables worker caching, a nil publisher drops events.
	WorkerCache    worker.Cache
	WorkerCacheTTL time.Duration
	Publisher      mq.Publisher
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = mq.NopPublisher{}
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		cfg.RateLimitRPS, cfg.RateLimitBurst = 5, 10
	}
	var db api.Pinger
	if cfg.DBPool != nil {
		db = cfg.DBPool
	}

	// Salon module
	salonRepo := salon.NewPgxRepository(cfg.DBPool)
	salonService := salon.NewService(salonRepo)

	// Worker module
	workerRepo := worker.NewPgxRepository(cfg.DBPool)
	workerService := worker.NewService(workerRepo, salonService)
	if cfg.WorkerCache != nil {
		workerService = worker.NewCachedService(workerService, cfg.WorkerCache, cfg.WorkerCacheTTL, cfg.Logger.Named("worker-cache"))
	}

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, workerService, salonService, cfg.Publisher, cfg.Logger.Named("booking"), booking.Options{
		Location:        cfg.Location,
		Lang:            cfg.Lang,
		EnforceCalendar: cfg.EnforceCalendar,
	})

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Lang:           cfg.Lang,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         cfg.Logger,
		DB:             db,
		SalonService:   salonService,
		WorkerService:  workerService,
		BookingService: bookingService,
	})

	return &Container{
		Router: router,
	}
}
