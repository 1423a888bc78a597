package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/task-list-service/modules/activity"
)

// Config holds process settings. Every field has a default so the service
// runs with no environment at all.
type Config struct {
	Port               int
	CORSAllowedOrigins string
	ShutdownTimeout    time.Duration
	ActivityCapacity   int
	AccessLog          bool
}

// loadConfig reads configuration from environment variables.
func loadConfig() Config {
	return Config{
		Port:               getEnvInt("PORT", 3000),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 30)) * time.Second,
		ActivityCapacity:   getEnvInt("ACTIVITY_CAPACITY", activity.DefaultCapacity),
		AccessLog:          getEnvBool("ACCESS_LOG", true),
	}
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}
