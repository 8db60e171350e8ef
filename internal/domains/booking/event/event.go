// Package event publishes booking lifecycle events to Kafka.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/shared/constant"
	"hotelbook/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingPaid    = "booking.paid"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	UserID        string    `json:"userId"`
	RoomID        string    `json:"roomId"`
	HotelID       string    `json:"hotelId"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	TotalPrice    float64   `json:"totalPrice"`
	IsPaid        bool      `json:"isPaid"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		RoomID:        booking.RoomID,
		HotelID:       booking.HotelID,
		CheckInDate:   booking.CheckInDate,
		CheckOutDate:  booking.CheckOutDate,
		TotalPrice:    booking.TotalPrice,
		IsPaid:        booking.IsPaid,
		PaymentMethod: booking.PaymentMethod,
		Status:        booking.Status,
		OccurredAt:    timezone.Now(),
	}
}

// Decode reads a BookingEvent back from a consumed message.
func Decode(msg kafkaGo.Message) (BookingEvent, error) {
	_, evt, err := kafka.DecodeKafkaMessage[BookingEvent](msg)

	return evt, err //nolint:wrapcheck
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking model.Booking) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topic.Booking,
		otel:   otel,
	}
}

// Publish keys events by booking id so every event of one booking lands on the same partition.
// Without configured brokers it does nothing.
func (p *publisherImpl) Publish(ctx context.Context, eventType string, booking model.Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !p.client.Enabled() {
		log.Debug().Str("type", eventType).Str("booking", booking.ID).Msg("kafka disabled, skipping booking event")

		return nil
	}

	scope.SetAttribute("event.type", eventType)

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:   booking.ID,
		Value: NewBookingEvent(eventType, booking),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	return nil
}
