package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens
	JWTSecret string
	JWTExpiry time.Duration

	// Pizza factory
	FactoryURL     string
	FactoryAPIKey  string
	FactoryTimeout time.Duration

	// Default admin seeded at startup (skipped when password is empty)
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Metrics
	MetricsInterval time.Duration

	// Server
	Port        string
	CORSOrigins string
	RateLimit   bool
}

func Load() *Config {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pizza_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		FactoryURL:     getEnv("FACTORY_URL", ""),
		FactoryAPIKey:  getEnv("FACTORY_API_KEY", ""),
		FactoryTimeout: parseDuration(getEnv("FACTORY_TIMEOUT", "15s"), 15*time.Second),

		AdminName:     getEnv("ADMIN_NAME", "service admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@pizza.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		MetricsInterval: parseDuration(getEnv("METRICS_INTERVAL", "10s"), 10*time.Second),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		RateLimit:   getEnv("RATE_LIMIT_ENABLED", "true") == "true",
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
