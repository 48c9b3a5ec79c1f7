package config

import (
	"os"
	"strconv"
	"sync"
)

type AppConfig struct {
	Name          string
	Env           string
	Port          string
	BaseURL       string
	UploadDir     string
	OutputDir     string
	MaxConcurrent int
	MaxUploadSize int64

	// SubmitRateLimit is the number of uploads accepted per client per minute.
	SubmitRateLimit int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = &AppConfig{
			Name:            getEnv("APP_NAME", "pitchdeck-analyzer"),
			Env:             getEnv("APP_ENV", "development"),
			Port:            getEnv("APP_PORT", ":8080"),
			BaseURL:         os.Getenv("APP_URL"),
			UploadDir:       getEnv("APP_UPLOAD_DIR", "Inputs"),
			OutputDir:       getEnv("APP_OUTPUT_DIR", "Outputs"),
			MaxConcurrent:   getEnvInt("APP_MAX_CONCURRENT", 2),
			MaxUploadSize:   int64(getEnvInt("APP_MAX_UPLOAD_MB", 20)) * 1024 * 1024,
			SubmitRateLimit: getEnvInt("APP_SUBMIT_RATE_LIMIT", 10),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
