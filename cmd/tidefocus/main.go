package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kaungsithu202/Tide-Focus/internal/app"
	"github.com/kaungsithu202/Tide-Focus/internal/config"
)

func main() {
	// .env is optional; deployment environments set real variables
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := app.Run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
