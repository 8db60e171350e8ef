package room_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbook/infras/otel/mocks"
	"hotelbook/internal/domains/room/model/dto"
	roomMocks "hotelbook/internal/domains/room/service/mocks"
	"hotelbook/internal/handlers/room"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/principal"
)

var owner = principal.Principal{UserID: "owner_1", Email: "owner@example.com", Role: "hotelOwner"}

func newRouter(t *testing.T, p *principal.Principal) (chi.Router, *roomMocks.MockRoom) {
	svc := roomMocks.NewMockRoom(gomock.NewController(t))
	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p != nil {
				r = r.WithContext(principal.WithContext(r.Context(), *p))
			}

			next.ServeHTTP(w, r)
		})
	})
	router.Route("/v1", handler.Router)

	return router, svc
}

func roomForm(t *testing.T, fields map[string]string, imageType string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="images"; filename="front.png"`)
	header.Set("Content-Type", imageType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_CreateRoom(t *testing.T) {
	fields := map[string]string{
		dto.FormRoomType:      "Double Bed",
		dto.FormPricePerNight: "120",
		dto.FormAmenities:     `["Free WiFi","Pool Access"]`,
	}

	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t, &owner)

		svc.EXPECT().
			Create(gomock.Any(), owner, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ principal.Principal, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
				assert.Equal(t, "Double Bed", req.RoomType)
				assert.Equal(t, 120.0, req.PricePerNight)
				assert.Equal(t, []string{"Free WiFi", "Pool Access"}, req.Amenities)
				assert.Len(t, req.Images, 1)

				return dto.RoomResponse{ID: "room_1", RoomType: req.RoomType, IsAvailable: true}, nil
			})

		body, contentType := roomForm(t, fields, "image/png")
		req := httptest.NewRequest(http.MethodPost, "/v1/rooms/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"room_1"`)
	})

	t.Run("rejects non image uploads", func(t *testing.T) {
		router, _ := newRouter(t, &owner)

		body, contentType := roomForm(t, fields, "application/pdf")
		req := httptest.NewRequest(http.MethodPost, "/v1/rooms/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		router, _ := newRouter(t, &owner)

		req := httptest.NewRequest(http.MethodPost, "/v1/rooms/", strings.NewReader(`{"roomType":"Single"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetRooms(t *testing.T) {
	router, svc := newRouter(t, nil)

	svc.EXPECT().
		GetAvailable(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 5, SortBy: "pricePerNight", SortDir: "ASC"}).
		Return(dto.GetRoomsResponse{Rooms: []dto.RoomResponse{{ID: "room_1"}}, TotalPage: 2, TotalData: 6}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms/?page=2&limit=5&sort_by=pricePerNight&sort_dir=asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalData":6`)
}

func TestHandler_GetRoomByID(t *testing.T) {
	router, svc := newRouter(t, nil)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.RoomResponse{}, failure.NotFound("room not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ToggleAvailability(t *testing.T) {
	t.Run("toggled", func(t *testing.T) {
		router, svc := newRouter(t, &owner)

		svc.EXPECT().
			ToggleAvailability(gomock.Any(), owner, dto.ToggleAvailabilityRequest{RoomID: "room_1"}).
			Return(dto.RoomResponse{ID: "room_1", IsAvailable: false}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/rooms/toggle-availability", strings.NewReader(`{"roomId":"room_1"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isAvailable":false`)
	})

	t.Run("someone else's room", func(t *testing.T) {
		router, svc := newRouter(t, &owner)

		svc.EXPECT().
			ToggleAvailability(gomock.Any(), owner, gomock.Any()).
			Return(dto.RoomResponse{}, failure.Forbidden("room belongs to another hotel"))

		req := httptest.NewRequest(http.MethodPost, "/v1/rooms/toggle-availability", strings.NewReader(`{"roomId":"room_9"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandler_GetOwnerRooms(t *testing.T) {
	router, _ := newRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/owner", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
