package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/server"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Msg("no .env file found, relying on environment")
	}

	if err := server.Start(&log); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
