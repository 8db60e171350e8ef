package shared_test

import (
	"errors"
	"fmt"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))

	if v := shared.ConvertStringToBool("true"); assert.NotNil(t, v) {
		assert.True(t, *v)
	}

	if v := shared.ConvertStringToBool("0"); assert.NotNil(t, v) {
		assert.False(t, *v)
	}
}

func TestConvertStringToFloat(t *testing.T) {
	v, err := shared.ConvertStringToFloat(" 129.5 ")
	assert.NoError(t, err)
	assert.InDelta(t, 129.5, v, 0.0001)

	_, err = shared.ConvertStringToFloat("abc")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 1},
		{10, 0, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 4, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name     string  `db:"name"`
		City     string  `db:"city"`
		Contact  *string `db:"contact"`
		Untagged string
	}

	contact := "+1 555 0100"

	result := shared.TransformFields(update{Name: "Grand Plaza", Contact: &contact, Untagged: "x"}, "owner-1")

	assert.Equal(t, "Grand Plaza", result["name"])
	assert.Equal(t, contact, result["contact"])
	assert.NotContains(t, result, "city")
	assert.NotContains(t, result, "Untagged")
	assert.Equal(t, "owner-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("room-1", "id", "rooms")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}, group)

	where, args := group.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, "room-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestIsPqError(t *testing.T) {
	unique := fmt.Errorf("insert hotel: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})

	assert.True(t, shared.IsPqError(unique, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(unique, constant.PqErrorCodeFkViolation))
	assert.False(t, shared.IsPqError(errors.New("boom"), constant.PqErrorCodeUniqueViolation))
}
