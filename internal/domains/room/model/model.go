package model

import (
	"hotelbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldAmenities     = "amenities"
	FieldImages        = "images"
	FieldIsAvailable   = "is_available"
)

const (
	ImageDirectory = "rooms"
	MaxImages      = 4
)

// Room is an owner listing. IsAvailable is the owner's manual listing switch and says
// nothing about bookings.
type Room struct {
	ID            string         `db:"id"`
	HotelID       string         `db:"hotel_id"`
	RoomType      string         `db:"room_type"`
	PricePerNight float64        `db:"price_per_night"`
	Amenities     pq.StringArray `db:"amenities"`
	Images        pq.StringArray `db:"images"`
	IsAvailable   bool           `db:"is_available"`
	model.Metadata
}

// RoomDetail is a room read together with its hotel and the hotel owner's avatar.
type RoomDetail struct {
	Room
	HotelName    string `column:"name"     db:"hotel_name"     table:"hotels"`
	HotelAddress string `column:"address"  db:"hotel_address"  table:"hotels"`
	HotelCity    string `column:"city"     db:"hotel_city"     table:"hotels"`
	HotelContact string `column:"contact"  db:"hotel_contact"  table:"hotels"`
	HotelOwnerID string `column:"owner_id" db:"hotel_owner_id" table:"hotels"`
	OwnerImage   string `column:"image"    db:"owner_image"    table:"users"`
}

func (RoomDetail) GetJoinQuery() string {
	return "JOIN hotels ON hotels.id = rooms.hotel_id JOIN users ON users.id = hotels.owner_id"
}
