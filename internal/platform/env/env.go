package env

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andora-ai/andora-backend/internal/platform/logger"
)

func Get(key, defaultVal string, log *logger.Logger) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		if log != nil {
			log.Debug("env var not set, using default", "key", key, "default", defaultVal)
		}
		return defaultVal
	}
	return v
}

func GetInt(key string, defaultVal int, log *logger.Logger) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Warn("env var is not an int, using default", "key", key, "value", v, "default", defaultVal)
		}
		return defaultVal
	}
	return n
}

func GetDuration(key string, defaultVal time.Duration, log *logger.Logger) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		if log != nil {
			log.Warn("env var is not a duration, using default", "key", key, "value", v, "default", defaultVal.String())
		}
		return defaultVal
	}
	return d
}
