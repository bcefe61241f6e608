package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	pkgconfig "github.com/Sule971/luxe-vogue-boutique/pkg/config"
	"github.com/Sule971/luxe-vogue-boutique/pkg/database"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the storefront session service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Persistent store
	StoreBackend   string `env:"STORE_BACKEND" envDefault:"memory"`
	StoreKeyPrefix string `env:"STORE_KEY_PREFIX" envDefault:"luxe:"`
	StoreTTLHours  int    `env:"STORE_TTL_HOURS" envDefault:"0"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"luxe"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"luxe_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"luxe_vogue"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"4"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"1"`

	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Remote API
	APIBaseURL        string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	APITimeoutSeconds int    `env:"API_TIMEOUT_SECONDS" envDefault:"15"`

	// Circuit breaker for remote API calls
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// Simulated latencies
	PaymentConfirmDelayMs int `env:"PAYMENT_CONFIRM_DELAY_MS" envDefault:"3000"`
	AuthLatencyMs         int `env:"AUTH_LATENCY_MS" envDefault:"800"`

	// Kafka activity events
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Rate limiting (requests per second per client, 0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	NotificationFeedSize int `env:"NOTIFICATION_FEED_SIZE" envDefault:"50"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads configuration from the given variables. Used by tests.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadFrom(cfg, environ); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StoreBackend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis, postgres, got %q", c.StoreBackend)
	}
	if c.StoreBackend == StoreRedis {
		if _, err := c.Redis(); err != nil {
			return err
		}
	}
	if c.StoreBackend == StorePostgres && c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required for the postgres store")
	}
	if c.StoreTTLHours < 0 {
		return fmt.Errorf("STORE_TTL_HOURS must not be negative, got %d", c.StoreTTLHours)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.APIBaseURL, err)
	}
	if c.APITimeoutSeconds < 1 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive, got %d", c.APITimeoutSeconds)
	}
	if c.PaymentConfirmDelayMs < 0 || c.AuthLatencyMs < 0 {
		return fmt.Errorf("simulated latencies must not be negative")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	if c.NotificationFeedSize < 1 {
		return fmt.Errorf("NOTIFICATION_FEED_SIZE must be positive, got %d", c.NotificationFeedSize)
	}
	return nil
}

// Postgres returns the pool configuration for the postgres store.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	pg.MaxConns = c.DBMaxConns
	pg.MinConns = c.DBMinConns
	return pg
}

// Redis returns the client configuration for the redis store.
func (c *Config) Redis() (database.RedisConfig, error) {
	host, port, err := net.SplitHostPort(c.RedisAddr)
	if err != nil {
		return database.RedisConfig{}, fmt.Errorf("invalid REDIS_ADDR %q: %w", c.RedisAddr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return database.RedisConfig{}, fmt.Errorf("invalid REDIS_ADDR port %q: %w", port, err)
	}

	rc := database.DefaultRedisConfig()
	rc.Host = host
	rc.Port = n
	rc.Password = c.RedisPass
	rc.DB = c.RedisDB
	return rc, nil
}

// StoreTTL returns the persisted value lifetime; zero means no expiry.
func (c *Config) StoreTTL() time.Duration {
	return time.Duration(c.StoreTTLHours) * time.Hour
}

// APITimeout returns the remote API request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// PaymentConfirmDelay returns the optimistic payment confirmation delay.
func (c *Config) PaymentConfirmDelay() time.Duration {
	return time.Duration(c.PaymentConfirmDelayMs) * time.Millisecond
}

// AuthLatency returns the simulated login and registration latency.
func (c *Config) AuthLatency() time.Duration {
	return time.Duration(c.AuthLatencyMs) * time.Millisecond
}
