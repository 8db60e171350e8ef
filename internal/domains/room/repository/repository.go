package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/room/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	LockTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
}

// RoomDetail reads rooms joined with their hotel.
type RoomDetail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.RoomDetail]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) RoomDetail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
