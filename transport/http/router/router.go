package router

import (
	_ "hotelbook/docs"
	"hotelbook/internal/handlers/auth"
	"hotelbook/internal/handlers/booking"
	"hotelbook/internal/handlers/hotel"
	"hotelbook/internal/handlers/payment"
	"hotelbook/internal/handlers/room"
	"hotelbook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Hotel   hotel.Handler
	Payment payment.Handler
	Room    room.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
