package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/backend/memstore"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenVerifier_Local(t *testing.T) {
	v := NewTokenVerifier(testSecret, nil)
	userID := uuid.New()

	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "joao@agrox.pt",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.Equal(t, "joao@agrox.pt", id.Email)
}

func TestTokenVerifier_LocalRejects(t *testing.T) {
	v := NewTokenVerifier(testSecret, nil)
	ctx := context.Background()

	cases := map[string]string{
		"wrong secret": signToken(t, "another-secret-another-secret-another", jwt.MapClaims{
			"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix(),
		}),
		"expired": signToken(t, testSecret, jwt.MapClaims{
			"sub": uuid.NewString(), "exp": time.Now().Add(-time.Minute).Unix(),
		}),
		"no expiry": signToken(t, testSecret, jwt.MapClaims{"sub": uuid.NewString()}),
		"anon key": signToken(t, testSecret, jwt.MapClaims{
			"role": "anon", "exp": time.Now().Add(time.Hour).Unix(),
		}),
		"garbage": "not-a-jwt",
		"empty":   "",
	}

	for name, raw := range cases {
		_, err := v.Verify(ctx, raw)
		assert.True(t, apperror.IsUnauthorized(err), name)
	}
}

func TestTokenVerifier_Remote(t *testing.T) {
	store := memstore.New("http://local")
	userID := uuid.New()
	store.AddUser("valid-token", backend.User{ID: userID, Email: "ana@agrox.pt"})
	v := NewTokenVerifier("", store)

	id, err := v.Verify(context.Background(), "valid-token")
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)

	_, err = v.Verify(context.Background(), "expired-token")
	assert.True(t, apperror.IsUnauthorized(err))
}
