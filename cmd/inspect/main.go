package main

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	roomRepo "hotelbook/internal/domains/room/repository"
	userRepo "hotelbook/internal/domains/user/repository"
	"hotelbook/internal/inspect"
	"hotelbook/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:]); err != nil {
		if errors.Is(err, inspect.ErrUsage) || errors.Is(err, inspect.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, inspect.Usage())
		}

		log.Fatal().Err(err).Msg("inspect failed")
	}
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	db, cleanup, err := postgres.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer cleanup()

	tracer := otel.New(cfg)
	defer tracer.Shutdown(context.Background()) //nolint:errcheck

	kafkaClient := kafka.New(cfg)
	defer kafkaClient.Close() //nolint:errcheck

	inspector := inspect.New(
		userRepo.New(db, tracer),
		hotelRepo.New(db, tracer),
		roomRepo.New(db, tracer),
		roomRepo.NewDetail(db, tracer),
		bookingRepo.NewDetail(db, tracer),
		kafkaClient,
		cfg,
		os.Stdout,
	)

	return inspector.Run(ctx, args)
}
