// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	OpenAI      OpenAIConfig
	Cache       CacheConfig
	Outfit      OutfitConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	I18n        I18nConfig
	Frontend    FrontendConfig
}

type FrontendConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	Path         string // sqlite file path
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	SeedPath     string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type OutfitConfig struct {
	BatchSize         int
	MaxPoolSize       int
	MinInventory      int
	Temperature       float64
	CompletionTimeout time.Duration
	PriceBandSlack    float64 // fraction the catalog query widens the budget by
	FeedbackLimit     int
}

type RateLimitConfig struct {
	GeneralPerSecond  int
	GeneratePerMinute int
}

type LogConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 90),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "outfits"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			Path:         getEnv("DB_PATH", "outfits.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
			SeedPath:     getEnv("CATALOG_SEED_PATH", ""),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("COMPLETION_CACHE_SIZE", 256),
			TTL:  getEnvAsDuration("COMPLETION_CACHE_TTL", 30*time.Minute),
		},
		Outfit: OutfitConfig{
			BatchSize:         getEnvAsInt("OUTFIT_BATCH_SIZE", 9),
			MaxPoolSize:       getEnvAsInt("OUTFIT_MAX_POOL_SIZE", 15),
			MinInventory:      getEnvAsInt("OUTFIT_MIN_INVENTORY", 9),
			Temperature:       getEnvAsFloat("OUTFIT_TEMPERATURE", 0.8),
			CompletionTimeout: getEnvAsDuration("OUTFIT_COMPLETION_TIMEOUT", 60*time.Second),
			PriceBandSlack:    getEnvAsFloat("OUTFIT_PRICE_BAND_SLACK", 0.25),
			FeedbackLimit:     getEnvAsInt("OUTFIT_FEEDBACK_LIMIT", 10),
		},
		RateLimit: RateLimitConfig{
			GeneralPerSecond:  getEnvAsInt("RATE_LIMIT_PER_SECOND", 10),
			GeneratePerMinute: getEnvAsInt("RATE_LIMIT_GENERATE_PER_MINUTE", 6),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Driver == "postgres" && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.OpenAI.APIKey == "" && c.Environment == "production" {
		return fmt.Errorf("OPENAI_API_KEY is required in production")
	}

	if c.Outfit.BatchSize < 1 {
		return fmt.Errorf("OUTFIT_BATCH_SIZE must be at least 1, got %d", c.Outfit.BatchSize)
	}

	if c.Outfit.MaxPoolSize < c.Outfit.BatchSize {
		return fmt.Errorf("OUTFIT_MAX_POOL_SIZE (%d) must not be below OUTFIT_BATCH_SIZE (%d)", c.Outfit.MaxPoolSize, c.Outfit.BatchSize)
	}

	if c.Outfit.PriceBandSlack < 0 {
		return fmt.Errorf("OUTFIT_PRICE_BAND_SLACK must not be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
