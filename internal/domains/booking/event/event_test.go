package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/kafka"
	kafkaMocks "hotelbook/infras/kafka/mocks"
	"hotelbook/infras/otel/mocks"
	"hotelbook/internal/domains/booking/event"
	"hotelbook/internal/domains/booking/model"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topic.Booking = "hotelbook.booking"

	return cfg
}

func TestPublisher_Publish(t *testing.T) {
	booking := model.Booking{
		ID:           "booking_1",
		UserID:       "user_1",
		RoomID:       "room_1",
		CheckInDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:   300,
		Status:       model.StatusPending,
	}

	t.Run("sends keyed event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, newConfig(), mocks.NewOtel())

		client.EXPECT().Enabled().Return(true)
		client.EXPECT().
			SendMessages(gomock.Any(), "hotelbook.booking", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "booking_1", messages[0].Key)

				evt, ok := messages[0].Value.(event.BookingEvent)
				require.True(t, ok)
				assert.Equal(t, event.TypeBookingCreated, evt.Type)
				assert.Equal(t, 300.0, evt.TotalPrice)

				return nil
			})

		assert.NoError(t, publisher.Publish(context.Background(), event.TypeBookingCreated, booking))
	})

	t.Run("disabled kafka is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, newConfig(), mocks.NewOtel())

		client.EXPECT().Enabled().Return(false)

		assert.NoError(t, publisher.Publish(context.Background(), event.TypeBookingPaid, booking))
	})

	t.Run("broker failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := kafkaMocks.NewMockClient(ctrl)
		publisher := event.NewPublisher(client, newConfig(), mocks.NewOtel())

		client.EXPECT().Enabled().Return(true)
		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

		assert.Error(t, publisher.Publish(context.Background(), event.TypeBookingPaid, booking))
	})
}

func TestDecode(t *testing.T) {
	msg := kafka.Message{Key: "booking_1", Value: event.BookingEvent{Type: event.TypeBookingPaid, BookingID: "booking_1", IsPaid: true}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	evt, err := event.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, event.TypeBookingPaid, evt.Type)
	assert.True(t, evt.IsPaid)

	raw.Value = json.RawMessage(`{"type":`)
	_, err = event.Decode(raw)
	assert.Error(t, err)
}
