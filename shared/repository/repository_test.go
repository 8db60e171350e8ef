package repository_test

import (
	"context"
	"errors"
	"hotelbook/infras/otel/mocks"
	"hotelbook/infras/postgres"
	"hotelbook/shared/dto"
	"hotelbook/shared/model"
	"hotelbook/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stay struct {
	ID         string  `db:"id"`
	RoomID     string  `db:"room_id"`
	TotalPrice float64 `db:"total_price"`
	model.Metadata
}

func newRepository(t *testing.T) (repository.Repository[stay], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[stay]("stay", "stays", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestRepository_InsertColumns(t *testing.T) {
	repo, _ := newRepository(t)

	assert.Equal(t, []string{"id", "room_id", "total_price", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO stays \(id, room_id, total_price, created_at, modified_at, created_by, modified_by\)`).
		WithArgs("s1", "r1", 300.0, now, now, "u1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), stay{ID: "s1", RoomID: "r1", TotalPrice: 300, Metadata: model.NewMetadata("u1", now)})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM stays\s+WHERE \(stays.room_id = \$1\)`).
		ExpectQuery().
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), dto.And(dto.Eq("stays", "room_id", "r1")))
	assert.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNoRows(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT stays.id, stays.room_id, stays.total_price, .* FROM stays\s+WHERE \(stays.id = \$1\)`).
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.Get(context.Background(), dto.And(dto.Eq("stays", "id", "missing")))
	assert.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllPaginated(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT stays.id, stays.room_id FROM stays\s+WHERE \(stays.room_id = \$1\)\s+ORDER BY stays.created_at DESC LIMIT \$2 OFFSET \$3`).
		ExpectQuery().
		WithArgs("r1", 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id"}).AddRow("s2", "r1").AddRow("s3", "r1"))

	params := dto.QueryParams{Page: 2, Limit: 5, SortBy: "stays.created_at", SortDir: dto.SortDirDesc}

	got, err := repo.GetAll(context.Background(), params, dto.And(dto.Eq("stays", "room_id", "r1")), "id", "room_id")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "s3", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Sum(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT COALESCE\(SUM\(stays.total_price\), 0\) FROM stays`).
		ExpectQuery().
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(450.5))

	sum, err := repo.Sum(context.Background(), "total_price", dto.And(dto.Eq("stays", "is_paid", true)))
	assert.NoError(t, err)
	assert.InDelta(t, 450.5, sum, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransactionCommit(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectPrepare(`SELECT stays.id FROM stays\s+WHERE \(stays.id = \$1\)\s+FOR UPDATE`).
		ExpectQuery().
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(sqltx *sqlx.Tx) error {
		locked, err := repo.LockTx(context.Background(), sqltx, dto.And(dto.Eq("stays", "id", "s1")))
		assert.True(t, locked)

		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransactionRollback(t *testing.T) {
	repo, mock := newRepository(t)
	errOverlap := errors.New("overlap")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(_ *sqlx.Tx) error {
		return errOverlap
	})

	assert.Same(t, errOverlap, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransactionPanic(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = repo.Transaction(context.Background(), func(_ *sqlx.Tx) error {
			panic("boom")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
