package config

import (
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	AllowOrigins string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		origins := os.Getenv("APP_ALLOW_ORIGINS")
		if origins == "" {
			origins = "*"
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "KK Careers Portal"),
			Env:          env,
			Port:         port,
			BaseURL:      strings.TrimRight(os.Getenv("APP_URL"), "/"),
			AllowOrigins: origins,
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
