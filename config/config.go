package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Broker management API
	ManagementURL string
	Username      string
	Password      string
	DefaultVHost  string

	// AMQP (test publishing)
	AmqpHost string
	AmqpPort string

	// Templates
	TemplateDir string

	// Web Admin
	EnableSwagger bool
	WebPort       string
	JwtSecret     string
	AdminUser     string
	AdminPassword string

	// Storage
	DataDir string

	// Metrics
	EnableMetrics bool

	// Logging
	LogLevel string

	Version string
}

// LoadConfig loads configuration from .env file, environment variables, or defaults
// Priority: environment variables > .env file > default values
func LoadConfig(version string) *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	return &Config{
		ManagementURL: getEnv("MQFORGE_MANAGEMENT_URL", "http://localhost:15672"),
		Username:      getEnv("MQFORGE_USERNAME", "guest"),
		Password:      getEnv("MQFORGE_PASSWORD", "guest"),
		DefaultVHost:  getEnv("MQFORGE_VHOST", "/"),

		AmqpHost: getEnv("MQFORGE_AMQP_HOST", "localhost"),
		AmqpPort: getEnv("MQFORGE_AMQP_PORT", "5672"),

		TemplateDir: getEnv("MQFORGE_TEMPLATE_DIR", "templates"),

		EnableSwagger: getEnvAsBool("MQFORGE_ENABLE_SWAGGER", false),
		WebPort:       getEnv("MQFORGE_WEB_PORT", "8080"),
		JwtSecret:     getEnv("MQFORGE_JWT_SECRET", "secret"),
		AdminUser:     getEnv("MQFORGE_ADMIN_USER", "admin"),
		AdminPassword: getEnv("MQFORGE_ADMIN_PASSWORD", "admin"),

		DataDir: getEnv("MQFORGE_DATA_DIR", "data"),

		EnableMetrics: getEnvAsBool("MQFORGE_ENABLE_METRICS", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		Version: version,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s: %s, using default: %t\n", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
