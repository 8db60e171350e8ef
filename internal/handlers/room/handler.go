package room

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/domains/room/service"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/owner", handler.GetOwnerRooms)
		routerGroup.Post("/toggle-availability", handler.ToggleAvailability)
		routerGroup.Get("/{id}", handler.GetRoomByID)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Creates a room under the caller's hotel. Up to four images are uploaded to the media host.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param roomType formData string true "Room type"
// @Param pricePerNight formData number true "Price per night"
// @Param amenities formData string false "JSON array of amenities"
// @Param images formData file true "Room images (1 to 4)"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}
	defer request.MultipartForm.RemoveAll() //nolint:errcheck

	req := dto.CreateRoomRequest{}

	if err := req.FromMultipart(request.MultipartForm); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, p, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully by user " + p.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms lists the rooms currently open for booking.
// @Summary Get available rooms
// @Description Rooms whose listing flag is on, with their hotel. Pagination is optional.
// @Tags Room
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "createdAt or pricePerNight"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	res, err := handler.service.GetAvailable(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOwnerRooms lists every room of the caller's hotel, listed or not.
// @Summary Get my hotel's rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerRooms")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetOwnerRooms(ctx, p)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ToggleAvailability flips the listing flag of one of the caller's rooms.
// @Summary Toggle room availability
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.ToggleAvailabilityRequest true "Toggle Availability Request"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/toggle-availability [post]
// @Security BearerAuth
func (handler *Handler) ToggleAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleAvailability")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.ToggleAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ToggleAvailability(ctx, p, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
