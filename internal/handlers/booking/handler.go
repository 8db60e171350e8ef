package booking

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/service"
	dashboardService "hotelbook/internal/domains/dashboard/service"
	paymentDto "hotelbook/internal/domains/payment/model/dto"
	paymentService "hotelbook/internal/domains/payment/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/principal"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service   service.Booking
	dashboard dashboardService.Dashboard
	payment   paymentService.Payment
	otel      otel.Otel
}

func New(service service.Booking, dashboard dashboardService.Dashboard, payment paymentService.Payment, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		dashboard: dashboard,
		payment:   payment,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/check-availability", handler.CheckAvailability)
		routerGroup.Post("/book", handler.CreateBooking)
		routerGroup.Get("/user", handler.GetUserBookings)
		routerGroup.Get("/hotel", handler.GetHotelDashboard)
		routerGroup.Post("/stripe-payment", handler.StartPayment)
	})
}

// CheckAvailability reports whether a room is free for a stay.
// @Summary Check room availability
// @Description A room is available when no booking of it overlaps the requested stay.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CheckAvailabilityRequest true "Check Availability Request"
// @Success 200 {object} response.Data[dto.CheckAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/check-availability [post]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CheckAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateBooking books a room for the caller.
// @Summary Book a room
// @Description Books the room when no other booking overlaps the stay. The total price is the nightly rate times the started days.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/book [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, p, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + p.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetUserBookings lists the caller's bookings.
// @Summary Get my bookings
// @Description Newest first, with room and hotel.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/user [get]
// @Security BearerAuth
func (handler *Handler) GetUserBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserBookings")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetUserBookings(ctx, p)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetHotelDashboard aggregates the bookings of the caller's hotel.
// @Summary Get hotel dashboard
// @Description Total bookings, paid revenue and the ten most recent bookings of the caller's hotel.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dashboardDto.DashboardResponse]
// @Failure 404 {object} response.Error "reason needs_hotel_registration when the caller has no hotel"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/hotel [get]
// @Security BearerAuth
func (handler *Handler) GetHotelDashboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelDashboard")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.dashboard.GetOwnerDashboard(ctx, p)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// StartPayment opens a hosted checkout session for one of the caller's bookings.
// @Summary Pay a booking online
// @Description Returns the checkout URL to redirect the browser to. The booking is only marked paid by the payment webhook.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body paymentDto.StartPaymentRequest true "Start Payment Request"
// @Success 200 {object} response.Data[paymentDto.StartPaymentResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/stripe-payment [post]
// @Security BearerAuth
func (handler *Handler) StartPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartPayment")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := paymentDto.StartPaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.payment.StartPayment(ctx, p, req, request.Header.Get(constant.RequestHeaderOrigin))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
