package payment

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/payment/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/transport/http/response"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxWebhookBytes caps the raw event body; Stripe events are far smaller.
const maxWebhookBytes = 64 << 10

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/payment-webhook", handler.Webhook)
}

// Webhook applies payment events pushed by Stripe.
// @Summary Stripe webhook
// @Description Verifies the Stripe-Signature header against the raw body and marks the referenced booking paid.
// @Tags Payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} response.Data[dto.WebhookResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payment-webhook [post]
func (handler *Handler) Webhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	payload, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxWebhookBytes))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to read payment webhook body")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	res, err := handler.service.HandleWebhook(ctx, payload, request.Header.Get(constant.RequestHeaderStripeSignature))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
