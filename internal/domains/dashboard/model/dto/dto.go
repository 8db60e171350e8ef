package dto

import (
	bookingDto "hotelbook/internal/domains/booking/model/dto"
	hotelDto "hotelbook/internal/domains/hotel/model/dto"
)

const RecentBookingsLimit = 10

type DashboardResponse struct {
	Hotel          hotelDto.HotelResponse       `json:"hotel"`
	TotalRooms     int                          `json:"totalRooms"`
	TotalBookings  int                          `json:"totalBookings"`
	TotalRevenue   float64                      `json:"totalRevenue"`
	RecentBookings []bookingDto.BookingResponse `json:"recentBookings"`
}
