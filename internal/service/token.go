package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenVerifier checks backend access tokens. With a JWT secret the token is
// verified locally; otherwise the auth service is asked.
type TokenVerifier struct {
	secret []byte
	remote backend.Authenticator
}

// NewTokenVerifier creates a verifier. Either secret or remote must be set.
func NewTokenVerifier(secret string, remote backend.Authenticator) *TokenVerifier {
	v := &TokenVerifier{remote: remote}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

// Verify returns the identity behind raw.
func (v *TokenVerifier) Verify(ctx context.Context, raw string) (*Identity, error) {
	if raw == "" {
		return nil, apperror.ErrUnauthorized
	}
	if v.secret != nil {
		return v.parseLocal(raw)
	}
	if v.remote == nil {
		return nil, apperror.Wrap(fmt.Errorf("no token verifier configured"), apperror.ErrCodeUnauthorized, "authentication required")
	}

	user, err := v.remote.GetUser(ctx, raw)
	if err != nil {
		if backend.KindOf(err) == backend.KindOther {
			// transport failures are not the caller's fault
			return nil, fmt.Errorf("verify token: %w", err)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "token rejected by auth service")
	}
	return &Identity{UserID: user.ID, Email: user.Email}, nil
}

// parseLocal checks an HS256 access token. Anonymous tokens carry no subject
// and are rejected.
func (v *TokenVerifier) parseLocal(raw string) (*Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "invalid access token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Wrap(jwt.ErrTokenInvalidClaims, apperror.ErrCodeUnauthorized, "invalid access token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil || userID == uuid.Nil {
		return nil, apperror.Wrap(jwt.ErrTokenInvalidClaims, apperror.ErrCodeUnauthorized, "access token has no user")
	}

	email, _ := claims["email"].(string)
	return &Identity{UserID: userID, Email: email}, nil
}
