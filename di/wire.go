//go:build wireinject
// +build wireinject

package di

import (
	"hotelbook/config"
	"hotelbook/infras/identity"
	"hotelbook/infras/mailer"
	"hotelbook/infras/postgres"
	"hotelbook/infras/redis"
	"hotelbook/infras/s3"
	"hotelbook/infras/stripe"
	"hotelbook/permissions"
	"hotelbook/shared/cache"
	"hotelbook/transport/http"
	"hotelbook/transport/http/middleware"
	"hotelbook/transport/http/router"

	"github.com/google/wire"

	bookingEvent "hotelbook/internal/domains/booking/event"
	bookingRepository "hotelbook/internal/domains/booking/repository"
	bookingService "hotelbook/internal/domains/booking/service"
	dashboardService "hotelbook/internal/domains/dashboard/service"
	hotelRepository "hotelbook/internal/domains/hotel/repository"
	hotelService "hotelbook/internal/domains/hotel/service"
	paymentService "hotelbook/internal/domains/payment/service"
	roomRepository "hotelbook/internal/domains/room/repository"
	roomService "hotelbook/internal/domains/room/service"
	userRepository "hotelbook/internal/domains/user/repository"
	userService "hotelbook/internal/domains/user/service"

	authHandler "hotelbook/internal/handlers/auth"
	bookingHandler "hotelbook/internal/handlers/booking"
	hotelHandler "hotelbook/internal/handlers/hotel"
	paymentHandler "hotelbook/internal/handlers/payment"
	roomHandler "hotelbook/internal/handlers/room"
	userHandler "hotelbook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	provideOtel,
	redis.New,
	provideKafka,
	identity.New,
	identity.NewWebhook,
	stripe.New,
	mailer.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	bookingEvent.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewDetail,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewDetail,
	bookingService.New,
	paymentService.New,
	dashboardService.New,
)

var domains = wire.NewSet(
	userDomain,
	hotelDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	hotelHandler.New,
	paymentHandler.New,
	roomHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}
