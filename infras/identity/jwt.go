package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Picture  string `json:"picture"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	key     any
	methods []string
	issuer  string
}

// NewJWTVerifier prefers an RS256 public key and falls back to an HS256 shared secret.
func NewJWTVerifier(publicKeyPEM, secret, issuer string) (Verifier, error) {
	verifier := &jwtVerifier{issuer: issuer}

	switch {
	case publicKeyPEM != "":
		key, err := parsePublicKey(publicKeyPEM)
		if err != nil {
			return nil, err
		}

		verifier.key = key
		verifier.methods = []string{jwt.SigningMethodRS256.Alg()}
	case secret != "":
		verifier.key = []byte(secret)
		verifier.methods = []string{jwt.SigningMethodHS256.Alg()}
	default:
		return nil, errors.New("jwt verifier needs a public key or a secret")
	}

	return verifier, nil
}

func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	// keys passed through env files usually carry escaped newlines
	normalized := strings.ReplaceAll(publicKeyPEM, `\n`, "\n")

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalized))
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt public key: %w", err)
	}

	return key, nil
}

func (v *jwtVerifier) Verify(_ context.Context, tokenString string) (Identity, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}

	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}

	claims := &tokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}

		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return Identity{}, ErrInvalidClaim
	}

	username := claims.Username
	if username == "" {
		username = claims.Name
	}

	return Identity{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Username: username,
		Image:    claims.Picture,
	}, nil
}
