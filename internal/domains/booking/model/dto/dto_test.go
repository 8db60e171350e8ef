package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"hotelbook/shared/validator"
)

func TestNights(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 6, d, h, 0, 0, 0, time.UTC) }

	assert.Equal(t, 3, dto.Nights(day(1, 0), day(4, 0)))
	assert.Equal(t, 1, dto.Nights(day(1, 14), day(2, 11)))
	assert.Equal(t, 2, dto.Nights(day(1, 10), day(2, 11)))
	assert.Equal(t, 300.0, dto.TotalPrice(100, day(1, 0), day(4, 0)))
}

func TestNights_AcrossClockChange(t *testing.T) {
	require.NoError(t, timezone.Load("America/New_York"))
	t.Cleanup(func() { _ = timezone.Load("UTC") })

	tests := []struct {
		name      string
		checkIn   string
		checkOut  string
		wantCount int
		wantTotal float64
	}{
		{name: "night the clocks fall back", checkIn: "2024-11-03", checkOut: "2024-11-04", wantCount: 1, wantTotal: 100},
		{name: "stay spanning fall back", checkIn: "2024-11-02", checkOut: "2024-11-05", wantCount: 3, wantTotal: 300},
		{name: "night the clocks spring forward", checkIn: "2024-03-10", checkOut: "2024-03-11", wantCount: 1, wantTotal: 100},
		{name: "stay spanning spring forward", checkIn: "2024-03-09", checkOut: "2024-03-12", wantCount: 3, wantTotal: 300},
		{name: "day checkout against a utc timestamp", checkIn: "2024-11-02", checkOut: "2024-11-05T04:00:00Z", wantCount: 3, wantTotal: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn, checkOut, err := dto.ParseStay(tt.checkIn, tt.checkOut)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCount, dto.Nights(checkIn, checkOut))
			assert.Equal(t, tt.wantTotal, dto.TotalPrice(100, checkIn, checkOut))

			req := dto.CreateBookingRequest{RoomID: "room_1", Guests: 1}
			assert.Equal(t, tt.wantTotal, req.ToModel("user_1", "hotel_1", checkIn, checkOut, 100).TotalPrice)
		})
	}
}

func TestParseStay(t *testing.T) {
	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		wantReason failure.Reason
	}{
		{name: "calendar days", checkIn: "2024-06-01", checkOut: "2024-06-04"},
		{name: "timestamps", checkIn: "2024-06-01T14:00:00Z", checkOut: "2024-06-04T11:00:00Z"},
		{name: "same day", checkIn: "2024-06-01", checkOut: "2024-06-01", wantReason: failure.ReasonInvalidDateRange},
		{name: "reversed", checkIn: "2024-06-04", checkOut: "2024-06-01", wantReason: failure.ReasonInvalidDateRange},
		{name: "malformed", checkIn: "June 1st", checkOut: "2024-06-04", wantReason: failure.ReasonValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn, checkOut, err := dto.ParseStay(tt.checkIn, tt.checkOut)

			if tt.wantReason == "" {
				assert.NoError(t, err)
				assert.True(t, checkIn.Before(checkOut))

				return
			}

			assert.True(t, failure.Is(err, tt.wantReason))
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{RoomID: "room_1", Guests: 2}
	checkIn := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	booking := req.ToModel("user_1", "hotel_1", checkIn, checkOut, 100)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, 300.0, booking.TotalPrice)
	assert.False(t, booking.IsPaid)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.PaymentMethodPayAtHotel, booking.PaymentMethod)
	assert.Equal(t, "user_1", booking.CreatedBy)
}

func TestCreateBookingRequest_Guests(t *testing.T) {
	tests := []struct {
		name    string
		guests  int
		wantErr bool
	}{
		{name: "single guest", guests: 1},
		{name: "large party", guests: 40},
		{name: "zero", guests: 0, wantErr: true},
		{name: "negative", guests: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{RoomID: "room_1", CheckInDate: "2024-06-01", CheckOutDate: "2024-06-04", Guests: tt.guests}

			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
