package dto_test

import (
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"hotelbook/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.NewMetadata("user-1", created))

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(created))
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "user-1", metadata.CreatedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name:   "all parameters",
			target: "/v1/rooms?page=2&limit=5&sort_by=price&sort_dir=asc",
			want:   dto.QueryParams{Page: 2, Limit: 5, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			target:         "/v1/rooms",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid numbers fall back to defaults",
			target:         "/v1/rooms?page=-3&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:   "nothing set without defaults",
			target: "/v1/rooms",
			want:   dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := map[string]string{"price": "rooms.price_per_night"}

	params := dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc}
	params.RestrictSort(allowed, "rooms.created_at")
	assert.Equal(t, "rooms.price_per_night", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)

	params = dto.QueryParams{SortBy: "1; DROP TABLE rooms"}
	params.RestrictSort(allowed, "rooms.created_at")
	assert.Equal(t, "rooms.created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Eq("bookings", "room_id", "room-1"),
		dto.Filter{
			Table:    "bookings",
			Field:    "check_in_date",
			ArgName:  "requested_check_out",
			Operator: dto.FilterOperatorLessEq,
			Value:    "2024-06-04",
		},
		dto.Filter{
			Table:    "bookings",
			Field:    "check_out_date",
			ArgName:  "requested_check_in",
			Operator: dto.FilterOperatorGreaterEq,
			Value:    "2024-06-01",
		},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND bookings.check_in_date <= :requested_check_out AND bookings.check_out_date >= :requested_check_in)", where)
	assert.Equal(t, map[string]any{
		"room_id":             "room-1",
		"requested_check_out": "2024-06-04",
		"requested_check_in":  "2024-06-01",
	}, args)
}

func TestFilter_InOperator(t *testing.T) {
	filter := dto.Filter{Table: "bookings", Field: "room_id", Operator: dto.FilterOperatorIn, Value: []string{"a", "b"}}

	where, args := filter.GetWhereClause()
	assert.Equal(t, "bookings.room_id IN (:room_id_0, :room_id_1) ", where)
	assert.Equal(t, "a", args["room_id_0"])
	assert.Equal(t, "b", args["room_id_1"])

	empty := dto.Filter{Table: "bookings", Field: "room_id", Operator: dto.FilterOperatorIn, Value: []string{}}

	where, args = empty.GetWhereClause()
	assert.Equal(t, "FALSE", where)
	assert.Empty(t, args)
}
