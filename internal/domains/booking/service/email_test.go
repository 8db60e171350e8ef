package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domains/booking/model"
	roomModel "hotelbook/internal/domains/room/model"
)

func TestRenderConfirmation(t *testing.T) {
	booking := model.Booking{
		ID:           "booking_1",
		Guests:       2,
		CheckInDate:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC),
		TotalPrice:   300,
	}
	room := roomModel.RoomDetail{
		Room:      roomModel.Room{RoomType: "Double Bed"},
		HotelName: "Sea <View>",
	}

	body, err := renderConfirmation(booking, room, "usd")
	require.NoError(t, err)

	assert.Contains(t, body, "Booking ID: booking_1")
	assert.Contains(t, body, "Room Type: Double Bed")
	assert.Contains(t, body, "Total Price: $300.00")
	assert.Contains(t, body, "Sea &lt;View&gt;")
	assert.NotContains(t, body, "<View>")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$99.50", formatPrice(99.5, "usd"))
	assert.Equal(t, "120.00 eur", formatPrice(120, "eur"))
}
