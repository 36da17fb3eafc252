package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fopmanager/fop-api/internal/models"
)

// Load reads the environment (optionally from a .env file) into a Config
func Load() (models.Config, error) {
	var cfg models.Config

	// .env is optional; live deployments set real environment variables
	_ = godotenv.Load()

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return cfg, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	cfg.Port = port
	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	cfg.DB = models.DBConfig{
		DSN:    os.Getenv("DSN"),
		DEVDSN: os.Getenv("DEV_DSN"),
	}

	if cfg.Env == "live" && cfg.DB.DSN == "" {
		return cfg, fmt.Errorf("DSN is required in live mode")
	}
	if cfg.Env != "live" && cfg.DB.DEVDSN == "" {
		return cfg, fmt.Errorf("DEV_DSN is required in %s mode", cfg.Env)
	}

	return cfg, nil
}
