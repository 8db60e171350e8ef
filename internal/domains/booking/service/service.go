package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/mailer"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/booking/event"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/repository"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	userModel "hotelbook/internal/domains/user/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	msgRoomNotFound    = "room not found"
	msgRoomUnavailable = "room is not available for the selected dates"

	argRequestedCheckIn  = "requested_check_in"
	argRequestedCheckOut = "requested_check_out"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
	IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	Create(ctx context.Context, p principal.Principal, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetUserBookings(ctx context.Context, p principal.Principal) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo           repository.Booking
	detailRepo     repository.BookingDetail
	roomRepo       roomRepo.Room
	roomDetailRepo roomRepo.RoomDetail
	mailer         mailer.Mailer
	publisher      event.Publisher
	cfg            *config.Config
	otel           otel.Otel
}

func New(
	repo repository.Booking,
	detailRepo repository.BookingDetail,
	roomRepo roomRepo.Room,
	roomDetailRepo roomRepo.RoomDetail,
	mailer mailer.Mailer,
	publisher event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:           repo,
		detailRepo:     detailRepo,
		roomRepo:       roomRepo,
		roomDetailRepo: roomDetailRepo,
		mailer:         mailer,
		publisher:      publisher,
		cfg:            cfg,
		otel:           otel,
	}
}

// OverlapFilter matches bookings of the room whose stay touches [checkIn, checkOut]. Both bounds
// are inclusive, so a stay ending on the day another begins counts as overlapping.
func OverlapFilter(roomID string, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldRoomID, roomID),
		gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldCheckInDate,
			ArgName:  argRequestedCheckOut,
			Operator: gDto.FilterOperatorLessEq,
			Value:    checkOut,
		},
		gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldCheckOutDate,
			ArgName:  argRequestedCheckIn,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    checkIn,
		},
	)
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.IsAvailable, err = s.IsAvailable(ctx, req.RoomID, checkIn, checkOut)

	return res, err
}

// IsAvailable reports whether no booking of the room overlaps the stay.
func (s *serviceImpl) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	overlapping, err := s.repo.Exist(ctx, OverlapFilter(roomID, checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to check room availability")

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return !overlapping, nil
}

// Create re-checks availability while holding a lock on the room row, so two requests for the
// same room cannot both pass the check.
func (s *serviceImpl) Create(ctx context.Context, p principal.Principal, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	roomFilter := shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName)

	room, err := s.roomDetailRepo.Get(ctx, roomFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, roomNotFound()
	}

	booking := req.ToModel(p.UserID, room.HotelID, checkIn, checkOut, room.PricePerNight)

	err = s.repo.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		found, err := s.roomRepo.LockTx(ctx, sqltx, roomFilter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !found {
			return roomNotFound()
		}

		overlapping, err := s.repo.ExistTx(ctx, sqltx, OverlapFilter(booking.RoomID, checkIn, checkOut))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if overlapping {
			return failure.New(http.StatusConflict, failure.ReasonRoomUnavailable, msgRoomUnavailable)
		}

		return s.repo.InsertTx(ctx, sqltx, booking)
	})
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking", booking.ID).Str("room", booking.RoomID).Float64("total", booking.TotalPrice).Msg("booking created")

	s.sendConfirmation(ctx, p, booking, room)

	if err := s.publisher.Publish(ctx, event.TypeBookingCreated, booking); err != nil {
		log.Warn().Err(err).Str("booking", booking.ID).Msg("failed to publish booking created event")
	}

	res.FromDetail(model.BookingDetail{
		Booking:           booking,
		RoomType:          room.RoomType,
		RoomImages:        room.Images,
		RoomPricePerNight: room.PricePerNight,
		HotelName:         room.HotelName,
		HotelAddress:      room.HotelAddress,
		HotelCity:         room.HotelCity,
		HotelOwnerID:      room.HotelOwnerID,
		UserEmail:         p.Email,
		UserUsername:      p.Username,
	})

	return res, nil
}

// sendConfirmation never fails the booking; problems are only logged.
func (s *serviceImpl) sendConfirmation(ctx context.Context, p principal.Principal, booking model.Booking, room roomModel.RoomDetail) {
	if p.Email == constant.Empty || strings.EqualFold(p.Email, userModel.PlaceholderEmail) {
		log.Info().Str("booking", booking.ID).Msg("no email address on file, skipping confirmation")

		return
	}

	body, err := renderConfirmation(booking, room, s.cfg.App.Currency)
	if err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Msg("failed to render booking confirmation")

		return
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:       p.Email,
		Subject:  confirmationSubject,
		HTMLBody: body,
	})
	if err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Msg("failed to send booking confirmation")
	}
}

func (s *serviceImpl) GetUserBookings(ctx context.Context, p principal.Principal) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUserBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	bookings, err := s.detailRepo.GetAll(ctx, params, gDto.And(gDto.Eq(model.TableName, model.FieldUserID, p.UserID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.FromDetails(bookings)

	return res, nil
}

func roomNotFound() error {
	return failure.New(http.StatusNotFound, failure.ReasonRoomNotFound, msgRoomNotFound)
}
