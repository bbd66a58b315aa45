package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Engine  EngineConfig
	Geo     GeoConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Matrix  MatrixConfig
	Log     LogConfig
	Sentry  SentryConfig
	Anthropic AnthropicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// EngineConfig holds the orchestrator's deadline and concurrency
// knobs (spec.md §6).
type EngineConfig struct {
	DeadlineMSTotal        int
	DeadlineMSPerScorer     int
	DeadlineMSPerExternal  int
	ConcurrencyLimit       int
	HardGateDefault        matching.HardGateMode
}

// GeoConfig holds the geo/routing provider's credentials and quotas.
// ClientID/ClientSecret/TokenURL empty means no OAuth2 credentials are
// configured, in which case cmd/matchengine falls back to
// geoprovidertest's deterministic fake rather than the production
// client.
type GeoConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	DailyQuota   int
	RPS          float64
}

// CacheConfig holds the geo cache's TTLs.
type CacheConfig struct {
	GeocodeTTL time.Duration
	RouteTTL   time.Duration
}

// RedisConfig holds the optional L2 geo cache's Redis connection.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MatrixConfig points at the weight-matrix and synonym definitions,
// either a local path or an s3:// URI (internal/platform/matrixstore).
// The S3* fields are only consulted when one of those paths uses the
// s3:// scheme.
type MatrixConfig struct {
	Path         string
	SynonymsPath string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// SentryConfig holds error-reporting configuration.
type SentryConfig struct {
	DSN         string
	Environment string
}

// AnthropicConfig holds the optional title-embedding provider's
// credentials; empty APIKey disables the embedding bonus.
type AnthropicConfig struct {
	APIKey string
}

// Load reads configuration from environment variables, following the
// same getEnv/getEnvAsInt/getEnvAsDuration pattern used elsewhere in
// this codebase.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Engine: EngineConfig{
			DeadlineMSTotal:       getEnvAsInt("DEADLINE_MS_TOTAL", 175),
			DeadlineMSPerScorer:   getEnvAsInt("DEADLINE_MS_PER_SCORER", 30),
			DeadlineMSPerExternal: getEnvAsInt("DEADLINE_MS_PER_EXTERNAL_CALL", 120),
			ConcurrencyLimit:      getEnvAsInt("CONCURRENCY_LIMIT", 128),
			HardGateDefault:       matching.HardGateMode(getEnv("HARD_GATE_DEFAULT", string(matching.HardGateStrict))),
		},
		Geo: GeoConfig{
			BaseURL:      getEnv("GEO_PROVIDER_BASE_URL", ""),
			ClientID:     getEnv("GEO_PROVIDER_CLIENT_ID", ""),
			ClientSecret: getEnv("GEO_PROVIDER_CLIENT_SECRET", ""),
			TokenURL:     getEnv("GEO_PROVIDER_TOKEN_URL", ""),
			DailyQuota:   getEnvAsInt("GEO_PROVIDER_DAILY_QUOTA", 25000),
			RPS:          getEnvAsFloat("GEO_PROVIDER_RPS", 50),
		},
		Cache: CacheConfig{
			GeocodeTTL: getEnvAsDuration("CACHE_GEOCODE_TTL_HOURS", 30*24*time.Hour),
			RouteTTL:   getEnvAsDuration("CACHE_ROUTE_TTL_HOURS", 1*time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Matrix: MatrixConfig{
			Path:         getEnv("MATRIX_CONFIG_PATH", "configs/matrices.yaml"),
			SynonymsPath: getEnv("SYNONYMS_CONFIG_PATH", "configs/synonyms.yaml"),
			S3Endpoint:   getEnv("MATRIX_S3_ENDPOINT", ""),
			S3Region:     getEnv("MATRIX_S3_REGION", ""),
			S3AccessKey:  getEnv("MATRIX_S3_ACCESS_KEY", ""),
			S3SecretKey:  getEnv("MATRIX_S3_SECRET_KEY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SENTRY_ENVIRONMENT", getEnv("SERVER_ENV", "development")),
		},
		Anthropic: AnthropicConfig{
			APIKey: getEnv("ANTHROPIC_API_KEY", ""),
		},
	}

	if cfg.Engine.HardGateDefault != matching.HardGateStrict && cfg.Engine.HardGateDefault != matching.HardGateAdvisory {
		return nil, fmt.Errorf("HARD_GATE_DEFAULT must be STRICT or ADVISORY, got %q", cfg.Engine.HardGateDefault)
	}

	return cfg, nil
}

// Addr returns the Redis address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions.

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if hours, err := strconv.Atoi(value); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return defaultValue
}
