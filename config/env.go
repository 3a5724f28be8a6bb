// Package config binds command-line flags for the snek3d commands. Every
// flag falls back to a SNEK3D_* environment variable, then to a default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const EnvPrefix = "SNEK3D_"

func lookup(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func EnvOrDefault(key, defaultVal string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultVal
}

func EnvIntOrDefault(key string, defaultVal int) int {
	if val, ok := lookup(key); ok {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func EnvInt64OrDefault(key string, defaultVal int64) int64 {
	if val, ok := lookup(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func EnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val, ok := lookup(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func EnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val, ok := lookup(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func EnvBoolOrDefault(key string, defaultVal bool) bool {
	if val, ok := lookup(key); ok {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
