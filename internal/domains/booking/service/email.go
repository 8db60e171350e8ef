package service

import (
	"bytes"
	"fmt"
	"hotelbook/internal/domains/booking/model"
	roomModel "hotelbook/internal/domains/room/model"
	"hotelbook/shared/timezone"
	"html/template"
)

const (
	confirmationSubject = "Booking Confirmation"
	dateLayout          = "Mon Jan 02 2006"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<h1>Booking Confirmed</h1>
<p>Thank you for booking with us!</p>
<p>Booking ID: {{ .BookingID }}</p>
<p>Hotel: {{ .HotelName }}</p>
<p>Location: {{ .HotelAddress }}</p>
<p>Room Type: {{ .RoomType }}</p>
<p>Guests: {{ .Guests }}</p>
<p>Check-In Date: {{ .CheckIn }}</p>
<p>Check-Out Date: {{ .CheckOut }}</p>
<p>Total Price: {{ .TotalPrice }}</p>`))

type confirmation struct {
	BookingID    string
	HotelName    string
	HotelAddress string
	RoomType     string
	Guests       int
	CheckIn      string
	CheckOut     string
	TotalPrice   string
}

func renderConfirmation(booking model.Booking, room roomModel.RoomDetail, currency string) (string, error) {
	var body bytes.Buffer

	err := confirmationTemplate.Execute(&body, confirmation{
		BookingID:    booking.ID,
		HotelName:    room.HotelName,
		HotelAddress: room.HotelAddress,
		RoomType:     room.RoomType,
		Guests:       booking.Guests,
		CheckIn:      timezone.Format(booking.CheckInDate, dateLayout),
		CheckOut:     timezone.Format(booking.CheckOutDate, dateLayout),
		TotalPrice:   formatPrice(booking.TotalPrice, currency),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return body.String(), nil
}

func formatPrice(amount float64, currency string) string {
	if currency == "" || currency == "usd" {
		return fmt.Sprintf("$%.2f", amount)
	}

	return fmt.Sprintf("%.2f %s", amount, currency)
}
