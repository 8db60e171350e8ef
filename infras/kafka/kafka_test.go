package kafka

import (
	"context"
	"hotelbook/config"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingID string `json:"bookingId"`
	Paid      bool   `json:"paid"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := Message{Key: "b-1", Value: bookingEvent{BookingID: "b-1", Paid: true}}

	raw, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("b-1"), raw.Key)
	assert.JSONEq(t, `{"bookingId":"b-1","paid":true}`, string(raw.Value))

	key, decoded, err := DecodeKafkaMessage[bookingEvent](raw)
	require.NoError(t, err)
	assert.Equal(t, "b-1", key)
	assert.Equal(t, bookingEvent{BookingID: "b-1", Paid: true}, decoded)

	_, _, err = DecodeKafkaMessage[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	message := Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_WithoutBrokers(t *testing.T) {
	client := New(&config.Config{})

	assert.False(t, client.Enabled())
	assert.ErrorIs(t, client.SendMessages(context.Background(), "topic", Message{Key: "k"}), ErrDisabled)
	assert.ErrorIs(t, client.Consume(context.Background(), "", "topic", func(kafkaGo.Message) {}), ErrDisabled)
	assert.NoError(t, client.Close())
}

func TestNew_WithBrokers(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client := New(cfg)

	assert.True(t, client.Enabled())
	assert.Error(t, client.Consume(context.Background(), "", "", func(kafkaGo.Message) {}))
	assert.NoError(t, client.Close())
}
