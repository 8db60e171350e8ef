package http

import (
	"hotelbook/config"
	"hotelbook/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type passthrough struct{}

func (passthrough) Tracing(next http.Handler) http.Handler { return next }
func (passthrough) Logger(next http.Handler) http.Handler  { return next }
func (passthrough) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}
func (passthrough) Auth(next http.Handler) http.Handler { return next }
func (passthrough) RBAC(next http.Handler) http.Handler { return next }

func newTestServer() *HTTP {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://app.example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	return New(cfg, router.New(router.DomainHandlers{}), passthrough{}, passthrough{})
}

func TestHTTP_Health(t *testing.T) {
	tests := []struct {
		name     string
		state    ServerState
		wantCode int
		wantBody string
	}{
		{name: "ready", state: ServerStateReady, wantCode: http.StatusOK, wantBody: `{"success":true,"message":"OK"}`},
		{name: "grace period", state: ServerStateInGracePeriod, wantCode: http.StatusServiceUnavailable, wantBody: `{"success":false,"message":"SERVER PREPARING TO SHUT DOWN"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer()
			server.setup()
			server.setState(tt.state)

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHTTP_RejectsWhileCleaningUp(t *testing.T) {
	server := newTestServer()
	server.setup()
	server.setState(ServerStateInCleanupPeriod)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTP_CORS(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/v1/rooms/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, ServerStateReady, server.State())
}
