package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/s3"
	hotelModel "hotelbook/internal/domains/hotel/model"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	"hotelbook/internal/domains/room/model"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/domains/room/repository"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/shared/timezone"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	msgRoomNotFound = "room not found"
)

var sortableColumns = map[string]string{
	"createdAt":     model.TableName + "." + constant.FieldCreatedAt,
	"pricePerNight": model.TableName + "." + model.FieldPricePerNight,
}

type Room interface {
	Create(ctx context.Context, p principal.Principal, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAvailable(ctx context.Context, params gDto.QueryParams) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetOwnerRooms(ctx context.Context, p principal.Principal) ([]dto.RoomResponse, error)
	ToggleAvailability(ctx context.Context, p principal.Principal, req dto.ToggleAvailabilityRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo       repository.Room
	detailRepo repository.RoomDetail
	hotelRepo  hotelRepo.Hotel
	s3         s3.S3
	otel       otel.Otel
}

func New(repo repository.Room, detailRepo repository.RoomDetail, hotelRepo hotelRepo.Hotel, s3 s3.S3, otel otel.Otel) Room {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		hotelRepo:  hotelRepo,
		s3:         s3,
		otel:       otel,
	}
}

func roomNotFound() error {
	return failure.New(http.StatusNotFound, failure.ReasonRoomNotFound, msgRoomNotFound)
}

func (s *serviceImpl) ownerHotel(ctx context.Context, ownerID string) (hotelModel.Hotel, error) {
	hotel, err := s.hotelRepo.Get(ctx, gDto.And(gDto.Eq(hotelModel.TableName, hotelModel.FieldOwnerID, ownerID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner hotel")

		return hotel, fmt.Errorf("failed to get owner hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		log.Info().Str("owner", ownerID).Msg("owner has no hotel registered")

		return hotel, failure.New(http.StatusNotFound, failure.ReasonNeedsHotelRegistration, hotelModel.MsgNeedsRegistration) //nolint:wrapcheck
	}

	return hotel, nil
}

// Create uploads the room images and stores the room under the caller's hotel. Uploaded
// images are removed again when the room cannot be stored.
func (s *serviceImpl) Create(ctx context.Context, p principal.Principal, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.ownerHotel(ctx, p.UserID)
	if err != nil {
		return res, err
	}

	images := make([]string, 0, len(req.Images))

	for _, image := range req.Images {
		url, err := s.s3.UploadFile(ctx, model.ImageDirectory, image)
		if err != nil {
			log.Error().Err(err).Str("file", image.Filename).Msg("failed to upload room image")
			s.removeImages(ctx, images)

			return res, fmt.Errorf("failed to upload room image: %w", err)
		}

		images = append(images, url)
	}

	room := req.ToModel(hotel.ID, images, p.UserID)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")
		s.removeImages(ctx, images)

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromDetail(model.RoomDetail{
		Room:         room,
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		HotelCity:    hotel.City,
		HotelContact: hotel.Contact,
		HotelOwnerID: hotel.OwnerID,
	})

	return res, nil
}

func (s *serviceImpl) removeImages(ctx context.Context, urls []string) {
	c := context.WithoutCancel(ctx)

	for _, url := range urls {
		if err := s.s3.DeleteFile(c, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to remove orphaned room image")
		}
	}
}

// GetAvailable lists listed rooms, newest first unless another sort is requested.
func (s *serviceImpl) GetAvailable(ctx context.Context, params gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.RestrictSort(sortableColumns, sortableColumns["createdAt"])
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldIsAvailable, true))

	total, err := s.detailRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.detailRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	limit := params.Limit
	if limit == 0 {
		limit = total
	}

	res.FromModels(rooms, total, limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.detailRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, roomNotFound()
	}

	res.FromDetail(room)

	return res, nil
}

func (s *serviceImpl) GetOwnerRooms(ctx context.Context, p principal.Principal) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwnerRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.ownerHotel(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	params := gDto.QueryParams{SortBy: sortableColumns["createdAt"], SortDir: gDto.SortDirDesc}

	rooms, err := s.detailRepo.GetAll(ctx, params, gDto.And(gDto.Eq(model.TableName, model.FieldHotelID, hotel.ID)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner rooms")

		return nil, fmt.Errorf("failed to get owner rooms: %w", err)
	}

	res = make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromDetail(room)
	}

	return res, nil
}

// ToggleAvailability flips the listing switch of a room the caller owns.
func (s *serviceImpl) ToggleAvailability(ctx context.Context, p principal.Principal, req dto.ToggleAvailabilityRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(req.RoomID, model.FieldID, model.TableName)

	room, err := s.detailRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, roomNotFound()
	}

	if room.HotelOwnerID != p.UserID {
		return res, failure.Forbidden("room belongs to another hotel") //nolint:wrapcheck
	}

	room.IsAvailable = !room.IsAvailable
	room.ModifiedAt = timezone.Now()
	room.ModifiedBy = p.UserID

	err = s.repo.Update(ctx, map[string]any{
		model.FieldIsAvailable:   room.IsAvailable,
		constant.FieldModifiedAt: room.ModifiedAt,
		constant.FieldModifiedBy: room.ModifiedBy,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update room availability")

		return res, fmt.Errorf("failed to update room availability: %w", err)
	}

	res.FromDetail(room)

	return res, nil
}
