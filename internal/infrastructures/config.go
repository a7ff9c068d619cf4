package infrastructures

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	PORT           string
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	SWEEP_INTERVAL time.Duration
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	sweepInterval := 5 * time.Minute
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sweepInterval = parsed
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Config = &AppConfig{
		PORT:           port,
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:  os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		SWEEP_INTERVAL: sweepInterval,
	}

	return Config
}
