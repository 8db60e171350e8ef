package user

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/user/model/dto"
	"hotelbook/internal/domains/user/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/principal"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/user", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProfile)
		routerGroup.Post("/store-recent-search", handler.StoreRecentSearch)
	})
}

// GetProfile returns the caller's role and recent searches.
// @Summary Get my profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetProfile(ctx, p)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// StoreRecentSearch remembers a searched city.
// @Summary Store a recent search
// @Description Keeps the three most recent distinct cities.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.StoreRecentSearchRequest true "Store Recent Search Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user/store-recent-search [post]
// @Security BearerAuth
func (handler *Handler) StoreRecentSearch(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StoreRecentSearch")
	defer scope.End()

	p, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.StoreRecentSearchRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.StoreRecentSearch(ctx, p, req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Recent search stored")
}
