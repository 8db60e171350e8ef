package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/hotel/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Transaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
