package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/repository"
	userModel "hotelbook/internal/domains/user/model"
	userRepo "hotelbook/internal/domains/user/repository"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/shared/timezone"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const msgHotelAlreadyRegistered = "hotel already registered"

type Hotel interface {
	Register(ctx context.Context, p principal.Principal, req dto.RegisterHotelRequest) (dto.HotelResponse, error)
}

type serviceImpl struct {
	repo     repository.Hotel
	userRepo userRepo.User
	otel     otel.Otel
}

func New(repo repository.Hotel, userRepo userRepo.User, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		otel:     otel,
	}
}

// Register creates the caller's only hotel and promotes the caller to hotel owner.
func (s *serviceImpl) Register(ctx context.Context, p principal.Principal, req dto.RegisterHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerFilter := gDto.And(gDto.Eq(model.TableName, model.FieldOwnerID, p.UserID))

	exist, err := s.repo.Exist(ctx, ownerFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return res, fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if exist {
		return res, hotelAlreadyRegistered()
	}

	hotel := req.ToModel(p.UserID)

	err = s.repo.Transaction(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, sqltx, hotel); err != nil {
			return err //nolint:wrapcheck
		}

		return s.userRepo.UpdateTx(ctx, sqltx, map[string]any{
			userModel.FieldRole:      constant.RoleHotelOwner,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: p.UserID,
		}, shared.FilterByID(p.UserID, userModel.FieldID, userModel.TableName))
	})
	if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
		return res, hotelAlreadyRegistered()
	}

	if err != nil {
		log.Error().Err(err).Str("owner", p.UserID).Msg("failed to register hotel")

		return res, fmt.Errorf("failed to register hotel: %w", err)
	}

	log.Info().Str("hotel", hotel.ID).Str("owner", p.UserID).Msg("hotel registered")

	res.FromModel(hotel)

	return res, nil
}

func hotelAlreadyRegistered() error {
	return failure.New(http.StatusConflict, failure.ReasonHotelAlreadyRegistered, msgHotelAlreadyRegistered)
}
