package identity

import (
	"errors"
	"fmt"
	"hotelbook/config"
	"net/http"

	"github.com/rs/zerolog/log"
	svix "github.com/svix/svix-webhooks/go"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

type svixVerifier struct {
	webhook *svix.Webhook
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify([]byte, http.Header) error {
	return fmt.Errorf("%w: no signing secret configured", ErrInvalidSignature)
}

// NewWebhookVerifier expects the provider's "whsec_" signing secret. Without one every event is rejected.
func NewWebhookVerifier(secret string) (WebhookVerifier, error) {
	if secret == "" {
		log.Warn().Msg("Identity webhook secret is not configured, identity events will be rejected")

		return rejectingVerifier{}, nil
	}

	webhook, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webhook verifier: %w", err)
	}

	return &svixVerifier{webhook: webhook}, nil
}

func NewWebhook(cfg *config.Config) (WebhookVerifier, error) {
	return NewWebhookVerifier(cfg.Identity.WebhookSecret)
}

func (v *svixVerifier) Verify(payload []byte, headers http.Header) error {
	if err := v.webhook.Verify(payload, headers); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return nil
}
