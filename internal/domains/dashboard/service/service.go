package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	bookingModel "hotelbook/internal/domains/booking/model"
	bookingDto "hotelbook/internal/domains/booking/model/dto"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	"hotelbook/internal/domains/dashboard/model/dto"
	hotelModel "hotelbook/internal/domains/hotel/model"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	GetOwnerDashboard(ctx context.Context, p principal.Principal) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	hotelRepo         hotelRepo.Hotel
	roomDetailRepo    roomRepo.RoomDetail
	bookingRepo       bookingRepo.Booking
	bookingDetailRepo bookingRepo.BookingDetail
	otel              otel.Otel
}

func New(
	hotelRepo hotelRepo.Hotel,
	roomDetailRepo roomRepo.RoomDetail,
	bookingRepo bookingRepo.Booking,
	bookingDetailRepo bookingRepo.BookingDetail,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		hotelRepo:         hotelRepo,
		roomDetailRepo:    roomDetailRepo,
		bookingRepo:       bookingRepo,
		bookingDetailRepo: bookingDetailRepo,
		otel:              otel,
	}
}

// GetOwnerDashboard aggregates the bookings of the caller's hotel. Revenue only counts paid
// bookings.
func (s *serviceImpl) GetOwnerDashboard(ctx context.Context, p principal.Principal) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwnerDashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.hotelRepo.Get(ctx, gDto.And(gDto.Eq(hotelModel.TableName, hotelModel.FieldOwnerID, p.UserID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner hotel")

		return res, fmt.Errorf("failed to get owner hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		log.Info().Str("owner", p.UserID).Msg("owner has no hotel registered")

		return res, failure.New(http.StatusNotFound, failure.ReasonNeedsHotelRegistration, hotelModel.MsgNeedsRegistration) //nolint:wrapcheck
	}

	hotelBookings := gDto.And(gDto.Eq(bookingModel.TableName, bookingModel.FieldHotelID, hotel.ID))
	paidBookings := gDto.And(hotelBookings, gDto.Eq(bookingModel.TableName, bookingModel.FieldIsPaid, true))

	res.TotalBookings, err = s.bookingRepo.Count(ctx, hotelBookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotel bookings")

		return res, fmt.Errorf("failed to count hotel bookings: %w", err)
	}

	res.TotalRevenue, err = s.bookingRepo.Sum(ctx, bookingModel.FieldTotalPrice, paidBookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum hotel revenue")

		return res, fmt.Errorf("failed to sum hotel revenue: %w", err)
	}

	res.TotalRooms, err = s.roomDetailRepo.Count(ctx, gDto.And(gDto.Eq(roomModel.TableName, roomModel.FieldHotelID, hotel.ID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotel rooms")

		return res, fmt.Errorf("failed to count hotel rooms: %w", err)
	}

	params := gDto.QueryParams{
		Page:    1,
		Limit:   dto.RecentBookingsLimit,
		SortBy:  bookingModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	recent, err := s.bookingDetailRepo.GetAll(ctx, params, hotelBookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return res, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	var bookings bookingDto.GetBookingsResponse
	bookings.FromDetails(recent)

	res.RecentBookings = bookings.Bookings
	res.Hotel.FromModel(hotel)

	return res, nil
}
