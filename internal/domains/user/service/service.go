package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/user/model"
	"hotelbook/internal/domains/user/model/dto"
	"hotelbook/internal/domains/user/repository"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
	"hotelbook/shared/timezone"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type User interface {
	EnsureUser(ctx context.Context, req dto.EnsureUserRequest) (dto.UserResponse, error)
	GetProfile(ctx context.Context, p principal.Principal) (dto.UserResponse, error)
	StoreRecentSearch(ctx context.Context, p principal.Principal, req dto.StoreRecentSearchRequest) error
	SyncIdentity(ctx context.Context, event dto.IdentityEvent) error
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// EnsureUser returns the stored user for the subject, creating a placeholder guest on first sight.
func (s *serviceImpl) EnsureUser(ctx context.Context, req dto.EnsureUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(req.ID, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != constant.Empty {
		s.fillPlaceholders(ctx, &user, req)
		res.FromModel(user)

		return res, nil
	}

	user = req.ToModel()

	err = s.repo.Insert(ctx, user)
	if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
		// a concurrent request created it first
		user, err = s.repo.Get(ctx, filter)
	}

	if err != nil {
		log.Error().Err(err).Str("user", req.ID).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user", user.ID).Msg("created placeholder user")

	res.FromModel(user)

	return res, nil
}

// fillPlaceholders replaces placeholder email or username once a token carries the real value.
// A failed write is logged and the stored values are kept.
func (s *serviceImpl) fillPlaceholders(ctx context.Context, user *model.User, req dto.EnsureUserRequest) {
	fields := map[string]any{}

	if user.Email == model.PlaceholderEmail && req.Email != constant.Empty {
		fields[model.FieldEmail] = req.Email
	}

	if user.Username == model.PlaceholderUsername && req.Username != constant.Empty {
		fields[model.FieldUsername] = req.Username
	}

	if len(fields) == 0 {
		return
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = constant.ActorSystem

	err := s.repo.Update(ctx, fields, shared.FilterByID(user.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Warn().Err(err).Str("user", user.ID).Msg("failed to replace placeholder profile")

		return
	}

	if email, ok := fields[model.FieldEmail].(string); ok {
		user.Email = email
	}

	if username, ok := fields[model.FieldUsername].(string); ok {
		user.Username = username
	}
}

func (s *serviceImpl) GetProfile(ctx context.Context, p principal.Principal) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, shared.FilterByID(p.UserID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) StoreRecentSearch(ctx context.Context, p principal.Principal, req dto.StoreRecentSearchRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StoreRecentSearch")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(p.UserID, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	cities := RememberCity(user.RecentSearchedCities, req.RecentSearchedCity)

	err = s.repo.Update(ctx, map[string]any{
		model.FieldRecentSearchedCities: pq.StringArray(cities),
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        p.UserID,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to store recent search")

		return fmt.Errorf("failed to store recent search: %w", err)
	}

	return nil
}

// RememberCity appends city as the newest entry, dropping an older duplicate and
// anything beyond the newest MaxRecentSearchedCities.
func RememberCity(cities []string, city string) []string {
	city = strings.TrimSpace(city)
	res := make([]string, 0, len(cities)+1)

	for _, c := range cities {
		if !strings.EqualFold(c, city) {
			res = append(res, c)
		}
	}

	res = append(res, city)

	if len(res) > model.MaxRecentSearchedCities {
		res = res[len(res)-model.MaxRecentSearchedCities:]
	}

	return res
}

// SyncIdentity applies a user lifecycle event from the identity provider. Unknown types are ignored.
func (s *serviceImpl) SyncIdentity(ctx context.Context, event dto.IdentityEvent) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncIdentity")
	defer scope.End()
	defer scope.TraceIfError(err)

	if event.Data.ID == constant.Empty {
		return failure.BadRequestFromString("identity event carries no user id") //nolint:wrapcheck
	}

	filter := shared.FilterByID(event.Data.ID, model.FieldID, model.TableName)

	switch event.Type {
	case dto.IdentityEventUserCreated, dto.IdentityEventUserUpdated:
		return s.upsert(ctx, event.Data, filter)
	case dto.IdentityEventUserDeleted:
		err = s.repo.Delete(ctx, filter)
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("user still owns hotels or bookings") //nolint:wrapcheck
		}

		if err != nil {
			log.Error().Err(err).Str("user", event.Data.ID).Msg("failed to delete user")

			return fmt.Errorf("failed to delete user: %w", err)
		}

		log.Info().Str("user", event.Data.ID).Msg("deleted user from identity event")

		return nil
	default:
		log.Info().Str("type", event.Type).Msg("ignoring identity event")

		return nil
	}
}

func (s *serviceImpl) upsert(ctx context.Context, data dto.IdentityUserData, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	req := data.ToEnsureUserRequest()

	if !exist {
		user := req.ToModel()
		user.Metadata.CreatedBy = constant.ActorIdentity
		user.Metadata.ModifiedBy = constant.ActorIdentity

		if err = s.repo.Insert(ctx, user); err != nil {
			log.Error().Err(err).Str("user", data.ID).Msg("failed to insert user")

			return fmt.Errorf("failed to insert user: %w", err)
		}

		return nil
	}

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ActorIdentity,
	}

	if req.Email != constant.Empty {
		fields[model.FieldEmail] = req.Email
	}

	if req.Username != constant.Empty {
		fields[model.FieldUsername] = req.Username
	}

	if req.Image != constant.Empty {
		fields[model.FieldImage] = req.Image
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("user", data.ID).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
