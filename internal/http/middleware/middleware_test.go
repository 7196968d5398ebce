package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/service"
)

type stubVerifier struct {
	id  *service.Identity
	err error
}

func (s stubVerifier) Verify(ctx context.Context, raw string) (*service.Identity, error) {
	return s.id, s.err
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLanguage_CookieBeatsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Language())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, string(Lang(c))) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9")
	req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "en"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "en", w.Body.String())
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "en", w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "pt", w.Body.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Language(), AuthMiddleware(stubVerifier{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, i18n.T(i18n.EN, i18n.KeyNotAuthorized), decodeError(t, w).Error)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(stubVerifier{err: apperror.ErrUnauthorized}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_AuthServiceDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(stubVerifier{err: errors.New("dial tcp: connection refused")}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestAuthMiddleware_SetsIdentityAndToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	r := gin.New()
	r.Use(AuthMiddleware(stubVerifier{id: &service.Identity{UserID: userID, Email: "rui@agrox.pt"}}))
	r.GET("/", func(c *gin.Context) {
		token, _ := backend.AccessToken(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user":  c.MustGet(ContextUserIDKey).(uuid.UUID).String(),
			"email": c.GetString(ContextEmailKey),
			"token": token,
		})
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user"])
	assert.Equal(t, "rui@agrox.pt", body["email"])
	assert.Equal(t, "abc.def.ghi", body["token"])
}

type countingBootstrapper struct {
	calls int
	err   error
}

func (b *countingBootstrapper) Ensure(ctx context.Context, userID uuid.UUID) error {
	b.calls++
	return b.err
}

func TestBootstrap_FailureDoesNotBlock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	boot := &countingBootstrapper{err: errors.New("rpc timeout")}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ContextUserIDKey, uuid.New()); c.Next() }, Bootstrap(boot))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, boot.calls)
}

func TestErrorHandler_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Language(), ErrorHandler())
	r.POST("/", func(c *gin.Context) { _ = c.Error(apperror.Validation(i18n.KeyDamageDescriptionRequired)) })

	req, _ := http.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyDamageDescriptionRequired), body.Error)
	assert.Equal(t, string(apperror.ErrCodeValidation), body.Code)
}

func TestErrorHandler_HidesBackendText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"rls", fmt.Errorf("insert damage_reports: %w", backend.NewError("42501", "new row violates row-level security policy for table \"damage_reports\"", 403)), http.StatusForbidden, i18n.KeyNotAuthorized},
		{"unavailable", probe.Unavailable(probe.DamageTable), http.StatusServiceUnavailable, i18n.KeyModuleUnavailable},
		{"constraint", backend.NewError("23505", "duplicate key value violates unique constraint \"fuelings_pkey\"", 409), http.StatusBadGateway, i18n.KeyGenericError},
		{"transport", errors.New("dial tcp 10.0.0.3:5432: i/o timeout"), http.StatusInternalServerError, i18n.KeyGenericError},
	}

	for _, tc := range cases {
		r := gin.New()
		r.Use(Language(), ErrorHandler())
		err := tc.err
		r.GET("/", func(c *gin.Context) { _ = c.Error(err) })

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code, tc.name)
		assert.Equal(t, i18n.T(i18n.EN, tc.key), decodeError(t, w).Error, tc.name)
		for _, leak := range []string{"damage_reports", "fuelings_pkey", "5432", "row-level"} {
			assert.NotContains(t, w.Body.String(), leak, tc.name)
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.agrox.pt/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.agrox.pt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.agrox.pt", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Language(), RateLimitMiddleware(2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, i18n.T(i18n.PT, i18n.KeyTooManyRequests), decodeError(t, w).Error)
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
