package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/booking/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (float64, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Transaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
}

// BookingDetail reads bookings joined with their room, hotel and guest.
type BookingDetail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.BookingDetail]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) BookingDetail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
