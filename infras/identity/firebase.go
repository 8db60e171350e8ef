package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier uses application default credentials when no credentials file is given.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (Verifier, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	log.Info().Str("project", projectID).Msg("Firebase identity verifier initialized")

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return Identity{}, ErrExpiredToken
		}

		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if token.UID == "" {
		return Identity{}, ErrInvalidClaim
	}

	return Identity{
		Subject:  token.UID,
		Email:    stringClaim(token.Claims, "email"),
		Username: stringClaim(token.Claims, "name"),
		Image:    stringClaim(token.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return value
}
