package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	otelScopeName = "stripe"

	MetadataBookingID = "bookingId"
)

var ErrInvalidSignature = errors.New("invalid stripe signature")

type CheckoutRequest struct {
	BookingID   string
	ProductName string
	Currency    string
	UnitAmount  int64
	SuccessURL  string
	CancelURL   string
}

// Gateway is the slice of the Stripe API the payment flow depends on.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (url string, err error)
	ParseWebhook(payload []byte, signature string) (stripeGo.Event, error)
	SessionMetadataByPaymentIntent(ctx context.Context, paymentIntentID string) (metadata map[string]string, found bool, err error)
}

type gatewayImpl struct {
	client        *stripeGo.Client
	webhookSecret string
	otel          otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	if cfg.External.Stripe.SecretKey == "" {
		log.Warn().Msg("Stripe secret key is not configured, checkout sessions will fail")
	}

	return &gatewayImpl{
		client:        stripeGo.NewClient(cfg.External.Stripe.SecretKey),
		webhookSecret: cfg.External.Stripe.WebhookSecret,
		otel:          otel,
	}
}

func checkoutParams(req CheckoutRequest) *stripeGo.CheckoutSessionCreateParams {
	return &stripeGo.CheckoutSessionCreateParams{
		Mode:       stripeGo.String(string(stripeGo.CheckoutSessionModePayment)),
		SuccessURL: stripeGo.String(req.SuccessURL),
		CancelURL:  stripeGo.String(req.CancelURL),
		LineItems: []*stripeGo.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripeGo.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripeGo.String(req.Currency),
					UnitAmount: stripeGo.Int64(req.UnitAmount),
					ProductData: &stripeGo.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripeGo.String(req.ProductName),
					},
				},
				Quantity: stripeGo.Int64(1),
			},
		},
		Metadata: map[string]string{
			MetadataBookingID: req.BookingID,
		},
	}
}

func (g *gatewayImpl) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (url string, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("booking.id", req.BookingID)

	session, err := g.client.V1CheckoutSessions.Create(ctx, checkoutParams(req))
	if err != nil {
		log.Error().Err(err).Str("bookingId", req.BookingID).Msg("failed to create checkout session")

		return constant.Empty, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// ParseWebhook checks the Stripe-Signature header against the raw body before decoding it.
func (g *gatewayImpl) ParseWebhook(payload []byte, signature string) (stripeGo.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripeGo.Event{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return event, nil
}

func (g *gatewayImpl) SessionMetadataByPaymentIntent(ctx context.Context, paymentIntentID string) (metadata map[string]string, found bool, err error) {
	ctx, scope := g.otel.NewScope(ctx, otelScopeName, otelScopeName+".SessionMetadataByPaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := &stripeGo.CheckoutSessionListParams{
		PaymentIntent: stripeGo.String(paymentIntentID),
	}
	params.Limit = stripeGo.Int64(1)

	for session, err := range g.client.V1CheckoutSessions.List(ctx, params) {
		if err != nil {
			log.Error().Err(err).Str("paymentIntent", paymentIntentID).Msg("failed to list checkout sessions")

			return nil, false, fmt.Errorf("failed to list checkout sessions: %w", err)
		}

		return session.Metadata, true, nil
	}

	return nil, false, nil
}
