package hotel

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/principal"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Hotel
	otel    otel.Otel
}

func New(service service.Hotel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RegisterHotel)
	})
}

// RegisterHotel registers the caller's hotel and makes them a hotel owner.
// @Summary Register a hotel
// @Description Each user can own a single hotel.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.RegisterHotelRequest true "Register Hotel Request"
// @Success 201 {object} response.Data[dto.HotelResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) RegisterHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterHotel")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.RegisterHotelRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Register(ctx, p, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Hotel registered by user " + p.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}
