package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/infras/stripe"
	"hotelbook/internal/domains/booking/event"
	bookingModel "hotelbook/internal/domains/booking/model"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	"hotelbook/internal/domains/payment/model/dto"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/shared/timezone"
	"math"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v82"
)

const (
	msgBookingNotFound    = "booking not found"
	msgBookingAlreadyPaid = "booking is already paid"
	msgNotYourBooking     = "booking belongs to another user"
	msgInvalidSignature   = "invalid webhook signature"
)

type Payment interface {
	StartPayment(ctx context.Context, p principal.Principal, req dto.StartPaymentRequest, origin string) (dto.StartPaymentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (dto.WebhookResponse, error)
}

type serviceImpl struct {
	bookingRepo       bookingRepo.Booking
	bookingDetailRepo bookingRepo.BookingDetail
	gateway           stripe.Gateway
	publisher         event.Publisher
	cfg               *config.Config
	otel              otel.Otel
}

func New(
	bookingRepo bookingRepo.Booking,
	bookingDetailRepo bookingRepo.BookingDetail,
	gateway stripe.Gateway,
	publisher event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		bookingRepo:       bookingRepo,
		bookingDetailRepo: bookingDetailRepo,
		gateway:           gateway,
		publisher:         publisher,
		cfg:               cfg,
		otel:              otel,
	}
}

// StartPayment opens a hosted checkout session for one of the caller's unpaid bookings. Nothing
// is written locally; the booking only changes once the provider calls back.
func (s *serviceImpl) StartPayment(ctx context.Context, p principal.Principal, req dto.StartPaymentRequest, origin string) (res dto.StartPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingDetailRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, bookingNotFound()
	}

	if booking.UserID != p.UserID {
		return res, failure.Forbidden(msgNotYourBooking) //nolint:wrapcheck
	}

	if booking.IsPaid {
		return res, failure.New(http.StatusConflict, failure.ReasonBookingAlreadyPaid, msgBookingAlreadyPaid) //nolint:wrapcheck
	}

	if origin == constant.Empty {
		origin = s.cfg.App.ClientURL
	}

	origin = strings.TrimSuffix(origin, "/")

	res.RedirectURL, err = s.gateway.CreateCheckoutSession(ctx, stripe.CheckoutRequest{
		BookingID:   booking.ID,
		ProductName: booking.HotelName,
		Currency:    s.cfg.App.Currency,
		UnitAmount:  UnitAmount(booking.TotalPrice),
		SuccessURL:  origin + dto.SuccessPath,
		CancelURL:   origin + dto.CancelPath,
	})
	if err != nil {
		return res, fmt.Errorf("failed to start payment: %w", err)
	}

	return res, nil
}

// UnitAmount converts a price to the smallest currency unit.
func UnitAmount(price float64) int64 {
	return int64(math.Round(price * constant.CentsInDollar))
}

// HandleWebhook verifies and applies a provider event. Both completion events resolve to the
// same booking reference and go through markBookingPaid.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (res dto.WebhookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	evt, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		log.Warn().Err(err).Msg("rejected payment webhook")

		return res, failure.New(http.StatusBadRequest, failure.ReasonInvalidSignature, msgInvalidSignature) //nolint:wrapcheck
	}

	scope.SetAttribute("stripe.event", string(evt.Type))

	var metadata map[string]string

	switch evt.Type {
	case stripeGo.EventTypeCheckoutSessionCompleted:
		var session stripeGo.CheckoutSession
		if err = json.Unmarshal(evt.Data.Raw, &session); err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}

		metadata = session.Metadata
	case stripeGo.EventTypePaymentIntentSucceeded:
		var intent stripeGo.PaymentIntent
		if err = json.Unmarshal(evt.Data.Raw, &intent); err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}

		metadata, _, err = s.gateway.SessionMetadataByPaymentIntent(ctx, intent.ID)
		if err != nil {
			return res, fmt.Errorf("failed to resolve payment intent: %w", err)
		}
	default:
		log.Info().Str("type", string(evt.Type)).Msg("ignoring payment webhook event")

		res.Received = true

		return res, nil
	}

	bookingID := metadata[stripe.MetadataBookingID]
	if bookingID == constant.Empty {
		log.Warn().Str("type", string(evt.Type)).Str("event", evt.ID).Msg("payment event without booking reference")

		return res, nil
	}

	if err = s.markBookingPaid(ctx, bookingID); err != nil {
		return res, err
	}

	res.Received = true

	return res, nil
}

// markBookingPaid overwrites the payment fields, so replays of the same event are harmless.
func (s *serviceImpl) markBookingPaid(ctx context.Context, bookingID string) error {
	filter := shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)

	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Warn().Str("booking", bookingID).Msg("payment for unknown booking")

		return bookingNotFound()
	}

	booking.IsPaid = true
	booking.PaymentMethod = bookingModel.PaymentMethodStripe
	booking.Status = bookingModel.StatusConfirmed
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = constant.ActorStripe

	err = s.bookingRepo.Update(ctx, map[string]any{
		bookingModel.FieldIsPaid:        booking.IsPaid,
		bookingModel.FieldPaymentMethod: booking.PaymentMethod,
		bookingModel.FieldStatus:        booking.Status,
		constant.FieldModifiedAt:        booking.ModifiedAt,
		constant.FieldModifiedBy:        booking.ModifiedBy,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to mark booking paid")

		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	log.Info().Str("booking", bookingID).Msg("booking paid")

	if err := s.publisher.Publish(ctx, event.TypeBookingPaid, booking); err != nil {
		log.Warn().Err(err).Str("booking", bookingID).Msg("failed to publish booking paid event")
	}

	return nil
}

func bookingNotFound() error {
	return failure.New(http.StatusNotFound, failure.ReasonBookingNotFound, msgBookingNotFound)
}
