package di

import (
	"context"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"time"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	o := otel.New(cfg)

	return o, func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()

		if err := o.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}
}

func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka writer")
		}
	}
}
