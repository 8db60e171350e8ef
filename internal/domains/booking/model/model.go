package model

import (
	"hotelbook/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldRoomID        = "room_id"
	FieldHotelID       = "hotel_id"
	FieldCheckInDate   = "check_in_date"
	FieldCheckOutDate  = "check_out_date"
	FieldGuests        = "guests"
	FieldTotalPrice    = "total_price"
	FieldIsPaid        = "is_paid"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"

	PaymentMethodPayAtHotel = "Pay At Hotel"
	PaymentMethodStripe     = "Stripe"
)

// Booking is a stay over the half open interval [CheckInDate, CheckOutDate).
type Booking struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	RoomID        string    `db:"room_id"`
	HotelID       string    `db:"hotel_id"`
	CheckInDate   time.Time `db:"check_in_date"`
	CheckOutDate  time.Time `db:"check_out_date"`
	Guests        int       `db:"guests"`
	TotalPrice    float64   `db:"total_price"`
	IsPaid        bool      `db:"is_paid"`
	PaymentMethod string    `db:"payment_method"`
	Status        string    `db:"status"`
	model.Metadata
}

type BookingDetail struct {
	Booking
	RoomType          string         `column:"room_type"       db:"room_type"            table:"rooms"`
	RoomImages        pq.StringArray `column:"images"          db:"room_images"          table:"rooms"`
	RoomPricePerNight float64        `column:"price_per_night" db:"room_price_per_night" table:"rooms"`
	HotelName         string         `column:"name"            db:"hotel_name"           table:"hotels"`
	HotelAddress      string         `column:"address"         db:"hotel_address"        table:"hotels"`
	HotelCity         string         `column:"city"            db:"hotel_city"           table:"hotels"`
	HotelOwnerID      string         `column:"owner_id"        db:"hotel_owner_id"       table:"hotels"`
	UserEmail         string         `column:"email"           db:"user_email"           table:"users"`
	UserUsername      string         `column:"username"        db:"user_username"        table:"users"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id " +
		"JOIN hotels ON hotels.id = bookings.hotel_id " +
		"JOIN users ON users.id = bookings.user_id"
}
