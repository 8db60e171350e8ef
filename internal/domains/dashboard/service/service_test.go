package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/infras/otel/mocks"
	bookingMocks "hotelbook/internal/domains/booking/mocks"
	bookingModel "hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/dashboard/service"
	hotelMocks "hotelbook/internal/domains/hotel/mocks"
	hotelModel "hotelbook/internal/domains/hotel/model"
	roomMocks "hotelbook/internal/domains/room/mocks"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
)

type fixture struct {
	hotelRepo         *hotelMocks.MockHotel
	roomDetailRepo    *roomMocks.MockRoomDetail
	bookingRepo       *bookingMocks.MockBooking
	bookingDetailRepo *bookingMocks.MockBookingDetail
	svc               service.Dashboard
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		hotelRepo:         hotelMocks.NewMockHotel(ctrl),
		roomDetailRepo:    roomMocks.NewMockRoomDetail(ctrl),
		bookingRepo:       bookingMocks.NewMockBooking(ctrl),
		bookingDetailRepo: bookingMocks.NewMockBookingDetail(ctrl),
	}
	f.svc = service.New(f.hotelRepo, f.roomDetailRepo, f.bookingRepo, f.bookingDetailRepo, mocks.NewOtel())

	return f
}

var (
	owner = principal.Principal{UserID: "owner_1", Role: "hotelOwner"}
	hotel = hotelModel.Hotel{ID: "hotel_1", Name: "Sea View", City: "Lisbon", OwnerID: "owner_1"}
)

func TestDashboardService_GetOwnerDashboard(t *testing.T) {
	t.Run("aggregates paid revenue only", func(t *testing.T) {
		f := newFixture(t)

		f.hotelRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)
		f.bookingRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "hotel_1", args[bookingModel.FieldHotelID])
				assert.NotContains(t, where, bookingModel.FieldIsPaid)

				return 3, nil
			})
		f.bookingRepo.EXPECT().
			Sum(gomock.Any(), bookingModel.FieldTotalPrice, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (float64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "hotel_1", args[bookingModel.FieldHotelID])
				assert.Equal(t, true, args[bookingModel.FieldIsPaid])

				return 450, nil
			})
		f.roomDetailRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.bookingDetailRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]bookingModel.BookingDetail, error) {
				assert.Equal(t, 10, params.Limit)
				assert.Equal(t, "bookings.created_at", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []bookingModel.BookingDetail{
					{Booking: bookingModel.Booking{ID: "booking_3", IsPaid: true, TotalPrice: 450}, RoomType: "Suite", UserUsername: "ana", UserEmail: "ana@example.com"},
					{Booking: bookingModel.Booking{ID: "booking_2", TotalPrice: 100}, RoomType: "Single", UserUsername: "joe"},
				}, nil
			})

		res, err := f.svc.GetOwnerDashboard(context.Background(), owner)
		require.NoError(t, err)

		assert.Equal(t, 3, res.TotalBookings)
		assert.Equal(t, 450.0, res.TotalRevenue)
		assert.Equal(t, 2, res.TotalRooms)
		assert.Equal(t, "Sea View", res.Hotel.Name)
		require.Len(t, res.RecentBookings, 2)
		assert.Equal(t, "Suite", res.RecentBookings[0].Room.RoomType)
		assert.Equal(t, "ana", res.RecentBookings[0].User.Username)
		assert.Equal(t, "ana@example.com", res.RecentBookings[0].User.Email)
	})

	t.Run("owner without a hotel", func(t *testing.T) {
		f := newFixture(t)

		f.hotelRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

		_, err := f.svc.GetOwnerDashboard(context.Background(), principal.Principal{UserID: "guest_1"})
		assert.True(t, failure.Is(err, failure.ReasonNeedsHotelRegistration))
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.hotelRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)
		f.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset"))

		_, err := f.svc.GetOwnerDashboard(context.Background(), owner)
		assert.Error(t, err)
		assert.Equal(t, failure.ReasonInternal, failure.GetReason(err))
	})
}
