package inspect_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/kafka"
	kafkaMocks "hotelbook/infras/kafka/mocks"
	"hotelbook/internal/domains/booking/event"
	bookingMocks "hotelbook/internal/domains/booking/mocks"
	bookingModel "hotelbook/internal/domains/booking/model"
	hotelMocks "hotelbook/internal/domains/hotel/mocks"
	hotelModel "hotelbook/internal/domains/hotel/model"
	roomMocks "hotelbook/internal/domains/room/mocks"
	roomModel "hotelbook/internal/domains/room/model"
	userMocks "hotelbook/internal/domains/user/mocks"
	userModel "hotelbook/internal/domains/user/model"
	"hotelbook/internal/inspect"
	gDto "hotelbook/shared/dto"
)

type fixture struct {
	users       *userMocks.MockUser
	hotels      *hotelMocks.MockHotel
	rooms       *roomMocks.MockRoom
	roomDetails *roomMocks.MockRoomDetail
	bookings    *bookingMocks.MockBookingDetail
	kafka       *kafkaMocks.MockClient
	out         *bytes.Buffer
	inspector   *inspect.Inspector
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topic.Booking = "hotelbook.booking"

	f := fixture{
		users:       userMocks.NewMockUser(ctrl),
		hotels:      hotelMocks.NewMockHotel(ctrl),
		rooms:       roomMocks.NewMockRoom(ctrl),
		roomDetails: roomMocks.NewMockRoomDetail(ctrl),
		bookings:    bookingMocks.NewMockBookingDetail(ctrl),
		kafka:       kafkaMocks.NewMockClient(ctrl),
		out:         &bytes.Buffer{},
	}

	f.inspector = inspect.New(f.users, f.hotels, f.rooms, f.roomDetails, f.bookings, f.kafka, cfg, f.out)

	return f
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func TestInspector_Bookings(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: "bookings.created_at", SortDir: "DESC"}, gDto.FilterGroup{}).
		Return([]bookingModel.BookingDetail{
			{
				Booking:   bookingModel.Booking{ID: "b1", CheckInDate: day("2024-06-01"), CheckOutDate: day("2024-06-04"), TotalPrice: 300, IsPaid: true, Status: "confirmed"},
				RoomType:  "Sea View",
				HotelName: "Blue Lagoon",
				UserEmail: "ana@example.com",
			},
			{
				Booking:   bookingModel.Booking{ID: "b2", CheckInDate: day("2024-07-01"), CheckOutDate: day("2024-07-02"), TotalPrice: 120.5, Status: "pending"},
				RoomType:  "Single",
				HotelName: "Blue Lagoon",
				UserEmail: "bo@example.com",
			},
		}, nil)

	require.NoError(t, f.inspector.Run(context.Background(), []string{inspect.CommandBookings}))

	out := f.out.String()
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "2024-06-04")
	assert.Contains(t, out, "2 bookings, paid 300.00, unpaid 120.50")
}

func TestInspector_Catalog(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gDto.FilterGroup{}).
		Return([]userModel.User{{ID: "user_1", Email: "owner@example.com", Role: "hotelOwner"}}, nil)
	f.hotels.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gDto.FilterGroup{}).
		Return([]hotelModel.Hotel{{ID: "hotel_1", Name: "Blue Lagoon", City: "Bali", OwnerID: "user_1"}}, nil)
	f.roomDetails.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gDto.FilterGroup{}).
		Return([]roomModel.RoomDetail{{Room: roomModel.Room{ID: "room_1", RoomType: "Sea View", PricePerNight: 100, IsAvailable: true}, HotelName: "Blue Lagoon"}}, nil)

	require.NoError(t, f.inspector.Run(context.Background(), []string{inspect.CommandCatalog}))

	out := f.out.String()
	assert.Contains(t, out, "USERS (1)")
	assert.Contains(t, out, "HOTELS (1)")
	assert.Contains(t, out, "ROOMS (1)")
	assert.Contains(t, out, "100.00")
}

func TestInspector_Catalog_StoreError(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	err := f.inspector.Catalog(context.Background())

	assert.ErrorContains(t, err, "failed to list users")
}

func TestInspector_RoomAvailability(t *testing.T) {
	t.Run("updates the flag", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, mod[roomModel.FieldIsAvailable])
				assert.Equal(t, "inspect", mod["modified_by"])

				return nil
			})

		require.NoError(t, f.inspector.Run(context.Background(), []string{inspect.CommandRoomAvailability, "room_1", "false"}))
		assert.Equal(t, "room room_1 is_available=false\n", f.out.String())
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.inspector.Run(context.Background(), []string{inspect.CommandRoomAvailability, "room_9", "true"})

		assert.ErrorIs(t, err, inspect.ErrRoomNotFound)
	})

	t.Run("bad arguments", func(t *testing.T) {
		f := newFixture(t)

		assert.ErrorIs(t, f.inspector.Run(context.Background(), []string{inspect.CommandRoomAvailability, "room_1"}), inspect.ErrUsage)
		assert.ErrorIs(t, f.inspector.Run(context.Background(), []string{inspect.CommandRoomAvailability, "room_1", "maybe"}), inspect.ErrUsage)
	})
}

func TestInspector_Run_Unknown(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.inspector.Run(context.Background(), nil), inspect.ErrUsage)
	assert.ErrorIs(t, f.inspector.Run(context.Background(), []string{"drop-everything"}), inspect.ErrUnknownCommand)
}

func TestInspector_Events(t *testing.T) {
	t.Run("prints decoded events and skips garbage", func(t *testing.T) {
		f := newFixture(t)

		payload, err := json.Marshal(event.BookingEvent{
			Type:       event.TypeBookingPaid,
			BookingID:  "b1",
			RoomID:     "room_1",
			UserID:     "user_1",
			TotalPrice: 300,
			IsPaid:     true,
			Status:     "confirmed",
			OccurredAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		f.kafka.EXPECT().Enabled().Return(true)
		f.kafka.EXPECT().
			Consume(gomock.Any(), "hotelbook-inspect", "hotelbook.booking", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) error {
				handler(kafkaGo.Message{Value: []byte("not json")})
				handler(kafkaGo.Message{Key: []byte("b1"), Value: payload})

				return context.Canceled
			})

		require.NoError(t, f.inspector.Events(context.Background()))

		out := f.out.String()
		assert.Contains(t, out, "booking.paid")
		assert.Contains(t, out, "booking=b1")
		assert.Contains(t, out, "paid=true")
		assert.Equal(t, 1, bytes.Count(f.out.Bytes(), []byte("\n")))
	})

	t.Run("kafka not configured", func(t *testing.T) {
		f := newFixture(t)

		f.kafka.EXPECT().Enabled().Return(false)

		assert.ErrorIs(t, f.inspector.Events(context.Background()), kafka.ErrDisabled)
	})
}
