package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_CHANGE_ME"

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	AllowedOrigin string
	// Comma separated IPs/CIDRs whose X-Forwarded-For is trusted
	TrustedProxies string
	JWTSecret      string
	// Access tokens minted by the `token` command
	AccessTokenExpiry time.Duration
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	QueryTimeout      time.Duration
	// Tables
	ProductsTable string // search, get, update, delete
	CreateTable   string // create; "productos" keeps the legacy target
	// Pagination
	DefaultPageSize int
	MaxPageSize     int
	// Cache; 0 disables the product cache
	CacheProductTTL time.Duration
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	return &Config{
		Port:              getEnv("PORT", "5000"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBUrl:             getEnv("DB_DSN", ""),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
		TrustedProxies:    getEnv("TRUSTED_PROXIES", ""),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		AccessTokenExpiry: getDurationEnv("ACCESS_TOKEN_EXPIRY", time.Hour*24),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),
		QueryTimeout:      getDurationEnv("QUERY_TIMEOUT", 5*time.Second),

		ProductsTable: getEnv("PRODUCTS_TABLE", "products"),
		CreateTable:   getEnv("CREATE_TABLE", "productos"),

		DefaultPageSize: getIntEnv("DEFAULT_PAGE_SIZE", 8),
		MaxPageSize:     getIntEnv("MAX_PAGE_SIZE", 100),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 0),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DB_DSN environment variable is required")
	}
	if c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize {
		return errors.New("DEFAULT_PAGE_SIZE must be >= 1 and <= MAX_PAGE_SIZE")
	}
	return c.ValidateJWTSecret()
}

// ValidateJWTSecret refuses the built-in secret outside development, since
// anyone who knows it can mint an admin token.
func (c *Config) ValidateJWTSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTSecret == defaultJWTSecret {
		if c.Env != "development" {
			return errors.New("JWT_SECRET must be set outside development")
		}
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
