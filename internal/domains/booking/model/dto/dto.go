package dto

import (
	"hotelbook/internal/domains/booking/model"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/timezone"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const msgInvalidDateRange = "check-out date must be after check-in date"

type CheckAvailabilityRequest struct {
	RoomID       string `json:"roomId"       validate:"required"`
	CheckInDate  string `json:"checkInDate"  validate:"required,date"`
	CheckOutDate string `json:"checkOutDate" validate:"required,date"`
}

func (r *CheckAvailabilityRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return ParseStay(r.CheckInDate, r.CheckOutDate)
}

type CheckAvailabilityResponse struct {
	IsAvailable bool `json:"isAvailable"`
}

type CreateBookingRequest struct {
	RoomID       string `json:"roomId"       validate:"required"`
	CheckInDate  string `json:"checkInDate"  validate:"required,date"`
	CheckOutDate string `json:"checkOutDate" validate:"required,date"`
	Guests       int    `json:"guests"       validate:"gt=0"`
}

func (r *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return ParseStay(r.CheckInDate, r.CheckOutDate)
}

func (r *CreateBookingRequest) ToModel(userID, hotelID string, checkIn, checkOut time.Time, pricePerNight float64) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		RoomID:        r.RoomID,
		HotelID:       hotelID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        r.Guests,
		TotalPrice:    TotalPrice(pricePerNight, checkIn, checkOut),
		IsPaid:        false,
		PaymentMethod: model.PaymentMethodPayAtHotel,
		Status:        model.StatusPending,
		Metadata:      gModel.NewMetadata(userID, timezone.Now()),
	}
}

// ParseStay parses both dates and rejects ranges where check-out is not after check-in.
func ParseStay(checkInDate, checkOutDate string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(checkInDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequest(err) //nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDate(checkOutDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequest(err) //nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return checkIn, checkOut, failure.New(http.StatusBadRequest, failure.ReasonInvalidDateRange, msgInvalidDateRange) //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// Nights counts started days between check-in and check-out on the wall clock of the check-in
// location, so a clock change inside the stay neither adds nor removes a night.
func Nights(checkIn, checkOut time.Time) int {
	elapsed := wallClock(checkOut.In(checkIn.Location())).Sub(wallClock(checkIn))

	return int(math.Ceil(elapsed.Hours() / constant.HoursInDay))
}

func wallClock(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	return time.Date(year, month, day, hour, minute, second, t.Nanosecond(), time.UTC)
}

func TotalPrice(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	return pricePerNight * float64(Nights(checkIn, checkOut))
}

type RoomSummary struct {
	ID            string   `json:"id"`
	RoomType      string   `json:"roomType"`
	Images        []string `json:"images"`
	PricePerNight float64  `json:"pricePerNight"`
}

type HotelSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type GuestSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookingResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	RoomID        string        `json:"roomId"`
	HotelID       string        `json:"hotelId"`
	CheckInDate   string        `json:"checkInDate"`
	CheckOutDate  string        `json:"checkOutDate"`
	Guests        int           `json:"guests"`
	TotalPrice    float64       `json:"totalPrice"`
	IsPaid        bool          `json:"isPaid"`
	PaymentMethod string        `json:"paymentMethod"`
	Status        string        `json:"status"`
	CreatedAt     string        `json:"createdAt"`
	Room          *RoomSummary  `json:"room,omitempty"`
	Hotel         *HotelSummary `json:"hotel,omitempty"`
	User          *GuestSummary `json:"user,omitempty"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.RoomID = mod.RoomID
	r.HotelID = mod.HotelID
	r.CheckInDate = timezone.Format(mod.CheckInDate, constant.DateFormat)
	r.CheckOutDate = timezone.Format(mod.CheckOutDate, constant.DateFormat)
	r.Guests = mod.Guests
	r.TotalPrice = mod.TotalPrice
	r.IsPaid = mod.IsPaid
	r.PaymentMethod = mod.PaymentMethod
	r.Status = mod.Status
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)
}

func (r *BookingResponse) FromDetail(mod model.BookingDetail) {
	r.FromModel(mod.Booking)
	r.Room = &RoomSummary{
		ID:            mod.RoomID,
		RoomType:      mod.RoomType,
		Images:        append([]string{}, mod.RoomImages...),
		PricePerNight: mod.RoomPricePerNight,
	}
	r.Hotel = &HotelSummary{
		ID:      mod.HotelID,
		Name:    mod.HotelName,
		Address: mod.HotelAddress,
		City:    mod.HotelCity,
	}
	r.User = &GuestSummary{
		ID:       mod.UserID,
		Username: mod.UserUsername,
		Email:    mod.UserEmail,
	}
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func (r *GetBookingsResponse) FromDetails(models []model.BookingDetail) {
	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}
