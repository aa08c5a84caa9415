package util

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the ENV variable value or the provided default.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the ENV variable parsed as int or the provided default.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	val, err := strconv.Atoi(strVal)
	if err != nil {
		return defaultVal
	}

	return val
}

// GetEnvAsBool returns the ENV variable parsed as bool or the provided default.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	val, err := strconv.ParseBool(strVal)
	if err != nil {
		return defaultVal
	}

	return val
}

// GetEnvAsDuration returns the ENV variable parsed via time.ParseDuration
// (e.g. "10s", "500ms") or the provided default.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	val, err := time.ParseDuration(strVal)
	if err != nil {
		return defaultVal
	}

	return val
}
