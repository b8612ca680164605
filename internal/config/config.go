package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the console's runtime settings.
type Config struct {
	ServiceName          string
	Port                 string
	BackendBaseURL       string
	BackendTimeout       time.Duration
	BackendJWTSecret     string
	BackendJWTSubject    string
	DatabaseURL          string
	LineFetchConcurrency int
}

// Load reads .env files (if any) and then the process environment.
// A missing .env is reported through the returned error but Config is still usable.
func Load(files ...string) (*Config, error) {
	envErr := godotenv.Load(files...)

	cfg := &Config{
		ServiceName:          getEnv("SERVICE_NAME", "printa-orders"),
		Port:                 getEnv("APP_PORT", "8080"),
		BackendBaseURL:       strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
		BackendTimeout:       getDuration("BACKEND_TIMEOUT", 10*time.Second),
		BackendJWTSecret:     getEnvFromFile("BACKEND_JWT_SECRET_FILE", "BACKEND_JWT_SECRET", ""),
		BackendJWTSubject:    getEnv("BACKEND_JWT_SUBJECT", "printa-orders"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		LineFetchConcurrency: getInt("LINE_FETCH_CONCURRENCY", 4),
	}
	return cfg, envErr
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
