package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SetupEnvFile loads .env into the process environment. Missing files are
// fine in containers where the environment is injected.
func SetupEnvFile() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// Config returns the environment value for key or defaultValue when unset.
func Config(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func ConfigBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(Config(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func ConfigInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(Config(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func ConfigDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(Config(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
