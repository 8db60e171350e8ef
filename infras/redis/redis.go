package redis

import (
	"context"
	"hotelbook/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 3 * time.Second

// New returns a client even when the first ping fails; go-redis reconnects on demand and callers fail open.
func New(config *config.Config) (*goRedis.Client, func()) {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("host", primary.Host).Msg("Redis is not reachable yet")
	} else {
		log.Info().
			Int("db", primary.DB).
			Str("host", primary.Host).
			Str("port", primary.Port).
			Msg("Connected to Redis")
	}

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
}
