package identity

//go:generate go run go.uber.org/mock/mockgen -source=./identity.go -destination=./mocks/identity_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"net/http"
	"strings"
)

var (
	ErrMissingToken    = errors.New("missing bearer token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrInvalidClaim    = errors.New("invalid token claim")
	ErrUnknownProvider = errors.New("unknown identity provider")
)

const bearerScheme = "Bearer"

// Identity is what the identity provider vouches for. Subject is the stable user id.
type Identity struct {
	Subject  string
	Email    string
	Username string
	Image    string
}

// Verifier turns a bearer token into the identity it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// WebhookVerifier authenticates user lifecycle events pushed by the identity provider.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

func New(cfg *config.Config) (Verifier, error) {
	switch cfg.Identity.Provider {
	case config.IdentityProviderJWT, "":
		return NewJWTVerifier(cfg.Identity.JWT.PublicKey, cfg.Identity.JWT.Secret, cfg.Identity.JWT.Issuer)
	case config.IdentityProviderFirebase:
		return NewFirebaseVerifier(context.Background(), cfg.Identity.Firebase.ProjectID, cfg.Identity.Firebase.CredentialsFile)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Identity.Provider)
	}
}

// ExtractBearerToken reads "Bearer <token>" case-insensitively.
func ExtractBearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
