package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSessionSecret is returned when no signing secret is set. The
// process must refuse to serve traffic in that case.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session and credential parameters. The session
// token lifetime tracks the cookie lifetime: 7 days by default, 30 days
// for remember-me sessions.
type AuthConfig struct {
	SessionSecret      string
	CookieName         string
	CookieMaxAgeDays   int
	RememberMaxAgeDays int
	BcryptCost         int
}

// NotificationConfig holds stub notification endpoints and the sweep
// interval for the shop status watcher.
type NotificationConfig struct {
	EmailFrom            string
	WebhookURL           string
	SweepIntervalSeconds int
}

// Load reads configuration from environment variables, applying defaults
// where possible. The session secret has no default: a missing secret is
// a fatal configuration error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, ErrMissingSessionSecret
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "marketplace-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SessionSecret:      secret,
			CookieName:         getEnv("SESSION_COOKIE_NAME", "mp_session"),
			CookieMaxAgeDays:   getEnvAsInt("SESSION_COOKIE_MAX_AGE_DAYS", 7),
			RememberMaxAgeDays: getEnvAsInt("SESSION_REMEMBER_MAX_AGE_DAYS", 30),
			BcryptCost:         getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Notification: NotificationConfig{
			EmailFrom:            getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL:           getEnv("NOTIFY_WEBHOOK_URL", ""),
			SweepIntervalSeconds: getEnvAsInt("SHOP_SWEEP_INTERVAL_SECONDS", 30),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsProduction reports whether the service runs with production settings.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// CookieMaxAge returns the cookie lifetime for a normal session.
func (a AuthConfig) CookieMaxAge() time.Duration {
	return time.Duration(a.CookieMaxAgeDays) * 24 * time.Hour
}

// RememberMaxAge returns the cookie lifetime for a remember-me session.
func (a AuthConfig) RememberMaxAge() time.Duration {
	return time.Duration(a.RememberMaxAgeDays) * 24 * time.Hour
}

// SweepInterval returns the status watcher interval.
func (n NotificationConfig) SweepInterval() time.Duration {
	if n.SweepIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(n.SweepIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
