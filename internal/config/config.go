package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type CommonConfig struct {
	DbDriver       string
	DbQueryTimeout time.Duration
	BrokerTimeout  time.Duration
	LogLevel       string
	LogFormat      string
}

func NewCommonConfig() CommonConfig {
	return CommonConfig{
		DbDriver:       getEnv("DB_DRIVER", "sqlite"),
		DbQueryTimeout: getEnvAsDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		BrokerTimeout:  getEnvAsDuration("BROKER_TIMEOUT", 5*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
}

var dotEnvOnce sync.Once

// loadDotEnv never overrides variables that are already set.
func loadDotEnv() {
	dotEnvOnce.Do(func() {
		names := os.Getenv("ENV_FILES")
		if names == "" {
			names = ".env"
		}
		files := strings.Split(names, ",")
		for _, file := range files {
			file = strings.TrimSpace(file)
			if file == "" {
				continue
			}
			if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
				slog.Warn("failed to load env file", slog.String("file", file), slog.String("error", err.Error()))
			}
		}
	})
}

func getEnv(key string, defaultVal string) string {
	loadDotEnv()
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return value
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return value
}

// getEnvFromFile reads the value from the file named by the key, the way
// docker secrets are mounted.
func getEnvFromFile(key string, defaultVal string) string {
	path := getEnv(key, "")
	if path == "" {
		return defaultVal
	}

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read secret file", slog.String("key", key), slog.String("error", err.Error()))
		return defaultVal
	}
	return strings.TrimSpace(string(content))
}
