package config

import (
	"os"
	"strconv"
)

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOptionalBool returns nil when key is unset or not a boolean.
func getEnvOptionalBool(key string) *bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return nil
	}
	return &value
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
