package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelbook/config"
	"hotelbook/infras/otel/mocks"
	cacheMocks "hotelbook/shared/cache/mocks"
	"hotelbook/transport/http/middleware"
)

func newLimited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})), cache
}

func TestRateLimit(t *testing.T) {
	t.Run("requests within the window pass", func(t *testing.T) {
		handler, cache := newLimited(t, true)

		cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1:curl", 60).Return(int64(2), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")
		req.Header.Set("User-Agent", "curl")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("requests over the limit are rejected", func(t *testing.T) {
		handler, cache := newLimited(t, true)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("direct clients share a counter across connections", func(t *testing.T) {
		handler, cache := newLimited(t, true)

		cache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.7:curl", 60).Return(int64(1), nil).Times(2)

		for _, remote := range []string{"203.0.113.7:50001", "203.0.113.7:50002"} {
			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.RemoteAddr = remote
			req.Header.Set("User-Agent", "curl")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		handler, cache := newLimited(t, true)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled limiter never touches the cache", func(t *testing.T) {
		handler, _ := newLimited(t, false)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
