package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/mailer"
	mailerMocks "hotelbook/infras/mailer/mocks"
	"hotelbook/infras/otel/mocks"
	"hotelbook/internal/domains/booking/event"
	eventMocks "hotelbook/internal/domains/booking/event/mocks"
	bookingMocks "hotelbook/internal/domains/booking/mocks"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/service"
	roomMocks "hotelbook/internal/domains/room/mocks"
	roomModel "hotelbook/internal/domains/room/model"
	userModel "hotelbook/internal/domains/user/model"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
)

type fixture struct {
	repo           *bookingMocks.MockBooking
	detailRepo     *bookingMocks.MockBookingDetail
	roomRepo       *roomMocks.MockRoom
	roomDetailRepo *roomMocks.MockRoomDetail
	mailer         *mailerMocks.MockMailer
	publisher      *eventMocks.MockPublisher
	svc            service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Currency = "usd"

	f := fixture{
		repo:           bookingMocks.NewMockBooking(ctrl),
		detailRepo:     bookingMocks.NewMockBookingDetail(ctrl),
		roomRepo:       roomMocks.NewMockRoom(ctrl),
		roomDetailRepo: roomMocks.NewMockRoomDetail(ctrl),
		mailer:         mailerMocks.NewMockMailer(ctrl),
		publisher:      eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.detailRepo, f.roomRepo, f.roomDetailRepo, f.mailer, f.publisher, cfg, mocks.NewOtel())

	return f
}

func runTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

var (
	guest = principal.Principal{UserID: "user_1", Email: "ana@example.com", Username: "Ana"}
	room  = roomModel.RoomDetail{
		Room:      roomModel.Room{ID: "room_1", HotelID: "hotel_1", RoomType: "Double Bed", PricePerNight: 100},
		HotelName: "Sea View",
	}
	stay = dto.CreateBookingRequest{RoomID: "room_1", CheckInDate: "2024-06-01", CheckOutDate: "2024-06-04", Guests: 2}
)

func TestOverlapFilter(t *testing.T) {
	checkIn := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	filter := service.OverlapFilter("room_1", checkIn, checkOut)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND bookings.check_in_date <= :requested_check_out AND bookings.check_out_date >= :requested_check_in)", where)
	assert.Equal(t, "room_1", args["room_id"])
	assert.Equal(t, checkOut, args["requested_check_out"])
	assert.Equal(t, checkIn, args["requested_check_in"])
}

func TestBookingService_CheckAvailability(t *testing.T) {
	req := dto.CheckAvailabilityRequest{RoomID: "room_1", CheckInDate: "2024-06-01", CheckOutDate: "2024-06-04"}

	tests := []struct {
		name       string
		req        dto.CheckAvailabilityRequest
		setupMock  func(f fixture)
		want       bool
		wantReason failure.Reason
		wantErr    bool
	}{
		{
			name: "no overlapping booking",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			want: true,
		},
		{
			name: "overlapping booking",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			want: false,
		},
		{
			name:       "check-out before check-in",
			req:        dto.CheckAvailabilityRequest{RoomID: "room_1", CheckInDate: "2024-06-04", CheckOutDate: "2024-06-01"},
			setupMock:  func(fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonInvalidDateRange,
		},
		{
			name: "store failure is never reported as available",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))
			},
			wantErr:    true,
			wantReason: failure.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CheckAvailability(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))
				assert.False(t, res.IsAvailable)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res.IsAvailable)
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("prices the stay and notifies the guest", func(t *testing.T) {
		f := newFixture(t)

		var inserted model.Booking

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.roomRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				inserted = booking

				return nil
			})
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg mailer.Message) error {
				assert.Equal(t, "ana@example.com", msg.To)
				assert.Contains(t, msg.HTMLBody, "Sea View")
				assert.Contains(t, msg.HTMLBody, "$300.00")

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), event.TypeBookingCreated, gomock.Any()).Return(nil)

		res, err := f.svc.Create(context.Background(), guest, stay)

		assert.NoError(t, err)
		assert.Equal(t, 300.0, inserted.TotalPrice)
		assert.False(t, inserted.IsPaid)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, model.PaymentMethodPayAtHotel, inserted.PaymentMethod)
		assert.Equal(t, "hotel_1", inserted.HotelID)
		assert.Equal(t, inserted.ID, res.ID)
		assert.Equal(t, 300.0, res.TotalPrice)
		assert.Equal(t, "Sea View", res.Hotel.Name)
	})

	t.Run("unavailable room writes nothing", func(t *testing.T) {
		f := newFixture(t)

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.roomRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), guest, stay)

		assert.True(t, failure.Is(err, failure.ReasonRoomUnavailable))
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.RoomDetail{}, nil)

		_, err := f.svc.Create(context.Background(), guest, stay)
		assert.True(t, failure.Is(err, failure.ReasonRoomNotFound))
	})

	t.Run("invalid range is rejected before any read", func(t *testing.T) {
		f := newFixture(t)

		req := stay
		req.CheckOutDate = req.CheckInDate

		_, err := f.svc.Create(context.Background(), guest, req)
		assert.True(t, failure.Is(err, failure.ReasonInvalidDateRange))
	})

	t.Run("email failure does not fail the booking", func(t *testing.T) {
		f := newFixture(t)

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.roomRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp: 421 service not available"))
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

		res, err := f.svc.Create(context.Background(), guest, stay)
		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("placeholder address gets no email", func(t *testing.T) {
		f := newFixture(t)

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.roomRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		p := principal.Principal{UserID: "user_2", Email: userModel.PlaceholderEmail}

		_, err := f.svc.Create(context.Background(), p, stay)
		assert.NoError(t, err)
	})

	t.Run("store failure inside the transaction", func(t *testing.T) {
		f := newFixture(t)

		f.roomDetailRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.roomRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("lock timeout"))

		_, err := f.svc.Create(context.Background(), guest, stay)
		assert.Error(t, err)
		assert.Equal(t, failure.ReasonInternal, failure.GetReason(err))
	})
}

func TestBookingService_GetUserBookings(t *testing.T) {
	f := newFixture(t)

	f.detailRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.BookingDetail, error) {
			assert.Equal(t, "bookings.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "user_1", args["user_id"])

			return []model.BookingDetail{
				{Booking: model.Booking{ID: "booking_2", UserID: "user_1"}, HotelName: "Sea View", RoomType: "Suite"},
				{Booking: model.Booking{ID: "booking_1", UserID: "user_1"}, HotelName: "Sea View", RoomType: "Single"},
			}, nil
		})

	res, err := f.svc.GetUserBookings(context.Background(), guest)
	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, "booking_2", res.Bookings[0].ID)
	assert.Equal(t, "Suite", res.Bookings[0].Room.RoomType)
}
