package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Shop        ShopConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiration     time.Duration
	SessionExpTime    time.Duration
}

type LimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type RateLimitConfig struct {
	// Backend is "memory" (per process) or "redis" (shared between instances).
	Backend  string
	Order    LimitConfig
	Customer LimitConfig
	Product  LimitConfig
	Admin    LimitConfig
}

type ShopConfig struct {
	// RecentOrderWindow bounds the duplicate-order check per e-mail.
	RecentOrderWindow time.Duration
	DefaultCountry    string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "eshop"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getBool("RABBITMQ_ENABLED", false),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		Auth: AuthConfig{
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:         getEnv("JWT_SECRET", ""),
			JWTExpiration:     getDuration("JWT_EXPIRATION", 12*time.Hour),
			SessionExpTime:    getDuration("SESSION_EXPIRATION", 12*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Backend: getEnv("RATE_LIMIT_BACKEND", "memory"),
			Order: LimitConfig{
				Window:      getDuration("RATE_LIMIT_ORDER_WINDOW", time.Minute),
				MaxRequests: getInt("RATE_LIMIT_ORDER_MAX", 5),
			},
			Customer: LimitConfig{
				Window:      getDuration("RATE_LIMIT_CUSTOMER_WINDOW", 5*time.Minute),
				MaxRequests: getInt("RATE_LIMIT_CUSTOMER_MAX", 3),
			},
			Product: LimitConfig{
				Window:      getDuration("RATE_LIMIT_PRODUCT_WINDOW", time.Minute),
				MaxRequests: getInt("RATE_LIMIT_PRODUCT_MAX", 20),
			},
			Admin: LimitConfig{
				Window:      getDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
				MaxRequests: getInt("RATE_LIMIT_ADMIN_MAX", 50),
			},
		},
		Shop: ShopConfig{
			RecentOrderWindow: getDuration("SHOP_RECENT_ORDER_WINDOW", time.Hour),
			DefaultCountry:    getEnv("SHOP_DEFAULT_COUNTRY", "Slovensko"),
		},
	}
}

// GetDSN builds the MySQL DSN. parseTime is required for DATETIME scanning.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
