package main

import (
	"hotelbook/config"
	"hotelbook/di"
	"hotelbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel Booking API
// @version 1.0
// @description Room listings, availability checks, bookings and payments for hotel owners and guests.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
