package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on images without zoneinfo

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/locale"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	ProdOrigins string `envconfig:"PROD_ORIGINS"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Database
	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	// Worker cache, disabled when RedisAddr is empty
	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	WorkerCacheTTL time.Duration `envconfig:"WORKER_CACHE_TTL" default:"1m"`

	// Booking events, disabled when RabbitURL is empty
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	// Per-IP limit on booking creation
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// Hide started slots and reject past or out-of-window bookings
	BookingEnforceCalendar bool `envconfig:"BOOKING_ENFORCE_CALENDAR" default:"false"`

	Locale   string `envconfig:"APP_LOCALE" default:"ro"`
	Timezone string `envconfig:"APP_TIMEZONE" default:"Europe/Bucharest"`

	location *time.Location
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	if !locale.Supported(cfg.Locale) {
		return nil, fmt.Errorf("unsupported APP_LOCALE %q", cfg.Locale)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.location = loc

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == PROD_STRING
}

// Location is the timezone that decides calendar days.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
