package auth

import (
	"encoding/json"
	"hotelbook/infras/identity"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/user/model/dto"
	"hotelbook/internal/domains/user/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/transport/http/response"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxWebhookBytes = 64 << 10

// Handler receives user lifecycle events from the identity provider.
type Handler struct {
	users    service.User
	verifier identity.WebhookVerifier
	otel     otel.Otel
}

func New(users service.User, verifier identity.WebhookVerifier, otel otel.Otel) Handler {
	return Handler{
		users:    users,
		verifier: verifier,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/identity-webhook", handler.IdentityWebhook)
}

// IdentityWebhook keeps local users in sync with the identity provider.
// @Summary Identity provider webhook
// @Description Signed with svix headers. Handles user.created, user.updated and user.deleted.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.IdentityEvent true "Identity Event"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/identity-webhook [post]
func (handler *Handler) IdentityWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IdentityWebhook")
	defer scope.End()

	payload, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxWebhookBytes))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	if err := handler.verifier.Verify(payload, request.Header); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected identity webhook")

		response.WithError(writer, failure.New(http.StatusBadRequest, failure.ReasonInvalidSignature, "invalid webhook signature"))

		return
	}

	event := dto.IdentityEvent{}
	if err := json.Unmarshal(payload, &event); err != nil {
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	scope.SetAttribute("identity.event", event.Type)

	if err := handler.users.SyncIdentity(ctx, event); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Webhook received")
}
