package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	identityMocks "hotelbook/infras/identity/mocks"
	"hotelbook/infras/otel/mocks"
	"hotelbook/internal/domains/user/model/dto"
	userMocks "hotelbook/internal/domains/user/service/mocks"
	"hotelbook/internal/handlers/auth"
)

const created = `{"type":"user.created","data":{"id":"user_1","email_addresses":[{"email_address":"ana@example.com"}],"first_name":"Ana","last_name":"Lee","image_url":"https://img/ana.png"}}`

type fixture struct {
	users    *userMocks.MockUser
	verifier *identityMocks.MockWebhookVerifier
	router   chi.Router
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		users:    userMocks.NewMockUser(ctrl),
		verifier: identityMocks.NewMockWebhookVerifier(ctrl),
	}

	handler := auth.New(f.users, f.verifier, mocks.NewOtel())

	f.router = chi.NewRouter()
	f.router.Route("/v1", handler.Router)

	return f
}

func (f fixture) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/identity-webhook", strings.NewReader(body))
	req.Header.Set("svix-id", "msg_1")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_IdentityWebhook(t *testing.T) {
	t.Run("syncs the user", func(t *testing.T) {
		f := newFixture(t)

		f.verifier.EXPECT().
			Verify([]byte(created), gomock.Any()).
			DoAndReturn(func(_ []byte, headers http.Header) error {
				assert.Equal(t, "msg_1", headers.Get("svix-id"))

				return nil
			})
		f.users.EXPECT().
			SyncIdentity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event dto.IdentityEvent) error {
				assert.Equal(t, "user.created", event.Type)
				assert.Equal(t, "user_1", event.Data.ID)
				assert.Equal(t, "ana@example.com", event.Data.EmailAddresses[0].EmailAddress)

				return nil
			})

		rec := f.post(created)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Webhook received"}`, rec.Body.String())
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newFixture(t)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(errors.New("no matching signature found"))

		rec := f.post(created)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reason":"invalid_signature"`)
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newFixture(t)

		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

		rec := f.post(`{"type":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
