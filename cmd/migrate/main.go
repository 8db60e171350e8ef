package main

import (
	"hotelbook/config"
	"hotelbook/helper"
	"hotelbook/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, drop, step-up or version")
	}

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
