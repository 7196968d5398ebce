package app

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/backend/memstore"
	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
)

const testSecret = "local-development-secret-with-32-chars!"

type testApp struct {
	app   *App
	store *memstore.Store
	token string
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                 "test",
		HTTPPort:            "8080",
		SupabaseJWTSecret:   testSecret,
		TableDriver:         config.DriverMemory,
		StorageDriver:       config.DriverMemory,
		MaxUploadSizeMB:     10,
		GeoTimeout:          time.Second,
		DamagePhotoRequired: true,
		BootstrapTTL:        time.Hour,
		AllowedOrigins:      []string{"http://localhost:3000"},
		RateLimitLimit:      1000,
		RateLimitPeriod:     time.Minute,
	}
}

// newTestApp builds the gateway over a memory store. With schema false the
// store has no tables or buckets at all.
func newTestApp(t *testing.T, schema bool) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cat, err := probe.DefaultCatalog()
	require.NoError(t, err)

	store := memstore.New("http://files.test")
	if schema {
		require.NoError(t, repository.DeclareSchema(store, cat))
	}

	a, err := New(cfg, cat, &Stores{Tables: store, Blobs: store, Auth: store})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &testApp{app: a, store: store, token: token}
}

func (ta *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if ta.token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+ta.token)
	}
	w := httptest.NewRecorder()
	ta.app.Engine.ServeHTTP(w, req)
	return w
}

func multipartRequest(t *testing.T, path string, fields map[string]string, photo []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "IMG_0001.jpg")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jpegBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	return data
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestApp_Unauthorized(t *testing.T) {
	ta := newTestApp(t, true)

	for _, path := range []string{"/api/damages", "/api/fuel", "/api/maintenance", "/api/orders", "/api/dashboard"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := ta.do(t, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.Zero(t, ta.store.Calls().Total())
}

func TestApp_DamageReportFlow(t *testing.T) {
	ta := newTestApp(t, true)

	w := ta.do(t, multipartRequest(t, "/api/damages", map[string]string{"description": "Broken glass"}, jpegBytes(2<<20)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	calls := ta.store.Calls()
	assert.Equal(t, 1, calls.Uploads)
	assert.Equal(t, 1, calls.Inserts)

	req, _ := http.NewRequest(http.MethodGet, "/api/damages", nil)
	w = ta.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items []struct {
			Description string `json:"description"`
			Status      string `json:"status"`
			Badge       string `json:"badge"`
			PhotoURL    string `json:"photo_url"`
		} `json:"items"`
		ModuleUnavailable bool `json:"module_unavailable"`
	}
	decode(t, w, &list)
	require.Len(t, list.Items, 1)
	assert.False(t, list.ModuleUnavailable)
	assert.Equal(t, "Broken glass", list.Items[0].Description)
	assert.Equal(t, "OPEN", list.Items[0].Status)
	assert.True(t, strings.HasPrefix(list.Items[0].PhotoURL, "http://files.test/damage-reports/"))
}

func TestApp_ValidationMakesNoRemoteCall(t *testing.T) {
	ta := newTestApp(t, true)
	before := ta.store.Calls()

	req := multipartRequest(t, "/api/damages", map[string]string{"description": "   "}, jpegBytes(1024))
	req.Header.Set("Accept-Language", "en")
	w := ta.do(t, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	assert.Equal(t, i18n.T(i18n.EN, i18n.KeyDamageDescriptionRequired), body.Error)

	after := ta.store.Calls()
	// the bootstrap RPC is the only remote call
	assert.Equal(t, before.Selects, after.Selects)
	assert.Equal(t, before.Inserts, after.Inserts)
	assert.Equal(t, before.Uploads, after.Uploads)
}

func TestApp_MultipartMemoryFollowsUploadLimit(t *testing.T) {
	ta := newTestApp(t, true)
	assert.Equal(t, int64(11<<20), ta.app.Engine.MaxMultipartMemory)
}

func TestApp_NotAnImage(t *testing.T) {
	ta := newTestApp(t, true)

	w := ta.do(t, multipartRequest(t, "/api/damages", map[string]string{"description": "Pneu furado"}, []byte("%PDF-1.4 not a photo")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, ta.store.Calls().Uploads)
}

func TestApp_ModuleUnavailable(t *testing.T) {
	ta := newTestApp(t, false)

	req, _ := http.NewRequest(http.MethodGet, "/api/fuel", nil)
	w := ta.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items             []any  `json:"items"`
		ModuleUnavailable bool   `json:"module_unavailable"`
		Message           string `json:"message"`
	}
	decode(t, w, &list)
	assert.Empty(t, list.Items)
	assert.True(t, list.ModuleUnavailable)
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyModuleUnavailable), list.Message)

	body := strings.NewReader(`{"type":"Ferramenta","details":"Preciso de uma chave 19"}`)
	req, _ = http.NewRequest(http.MethodPost, "/api/orders", body)
	req.Header.Set("Content-Type", "application/json")
	w = ta.do(t, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "order_requests")

	req, _ = http.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w = ta.do(t, req)
	var dash struct {
		Tiles []struct {
			Key       string `json:"key"`
			Available bool   `json:"available"`
		} `json:"tiles"`
	}
	decode(t, w, &dash)
	available := map[string]bool{}
	for _, tile := range dash.Tiles {
		available[tile.Key] = tile.Available
	}
	assert.False(t, available[i18n.KeyTileFuel])
	assert.False(t, available[i18n.KeyTileOrders])
	assert.True(t, available[i18n.KeyTileDamages])
	assert.True(t, available[i18n.KeyTileSupport])
}

func TestApp_FuelFlow(t *testing.T) {
	ta := newTestApp(t, true)

	req, _ := http.NewRequest(http.MethodPost, "/api/fuel/token", nil)
	w := ta.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)
	var tok struct {
		Token string `json:"token"`
	}
	decode(t, w, &tok)
	require.NotEmpty(t, tok.Token)

	w = ta.do(t, multipartRequest(t, "/api/fuel", map[string]string{
		"token":      tok.Token,
		"value":      "1.234,50",
		"km_hours":   "6512",
		"geo_status": "denied",
	}, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Notice string `json:"notice"`
		Data   struct {
			Value    float64  `json:"value"`
			KmHours  float64  `json:"km_hours"`
			Latitude *float64 `json:"latitude"`
		} `json:"data"`
	}
	decode(t, w, &created)
	assert.Equal(t, 1234.5, created.Data.Value)
	assert.Equal(t, 6512.0, created.Data.KmHours)
	assert.Nil(t, created.Data.Latitude)
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyGeoFailed), created.Notice)
}

func TestApp_MaintenanceUsesCoordinatesAsLocation(t *testing.T) {
	ta := newTestApp(t, true)

	w := ta.do(t, multipartRequest(t, "/api/maintenance", map[string]string{
		"description": "Trator não arranca",
		"latitude":    "38.7166667",
		"longitude":   "-9.1391667",
	}, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Location     string `json:"location"`
			Badge        string `json:"badge"`
			ResponseText string `json:"response_text"`
		} `json:"data"`
	}
	decode(t, w, &created)
	assert.Equal(t, "38.716667, -9.139167", created.Data.Location)
	assert.Equal(t, "secondary", created.Data.Badge)
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyMaintenanceNoResponse), created.Data.ResponseText)
}

func TestApp_LanguageCookie(t *testing.T) {
	ta := newTestApp(t, true)

	req, _ := http.NewRequest(http.MethodPut, "/api/language", strings.NewReader(`{"language":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	w := ta.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == i18n.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "en", cookie.Value)

	req, _ = http.NewRequest(http.MethodGet, "/api/languages", nil)
	req.AddCookie(cookie)
	w = ta.do(t, req)
	var langs struct {
		Current string `json:"current"`
		Options []any  `json:"options"`
	}
	decode(t, w, &langs)
	assert.Equal(t, "en", langs.Current)
	assert.Len(t, langs.Options, 2)

	req, _ = http.NewRequest(http.MethodPut, "/api/language", strings.NewReader(`{"language":"fr"}`))
	req.Header.Set("Content-Type", "application/json")
	w = ta.do(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_SupportAndHealth(t *testing.T) {
	ta := newTestApp(t, true)

	req, _ := http.NewRequest(http.MethodGet, "/api/support", nil)
	w := ta.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tel_link":"tel:+351926087495"`)

	req, _ = http.NewRequest(http.MethodGet, "/health", nil)
	w = ta.do(t, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_ProbeStatusAfterUse(t *testing.T) {
	ta := newTestApp(t, true)

	req, _ := http.NewRequest(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, ta.do(t, req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/api/probe", nil)
	w := ta.do(t, req)
	var status struct {
		Resources []struct {
			Resource string `json:"resource"`
			State    string `json:"state"`
			Target   string `json:"target"`
		} `json:"resources"`
	}
	decode(t, w, &status)

	found := false
	for _, r := range status.Resources {
		if r.Resource == probe.OrderTable {
			found = true
			assert.Equal(t, "active", r.State)
			assert.Equal(t, "order_requests", r.Target)
		}
	}
	assert.True(t, found)
}

func TestOpenStores_Memory(t *testing.T) {
	cfg := testConfig()
	cat, err := probe.DefaultCatalog()
	require.NoError(t, err)

	stores, err := OpenStores(context.Background(), cfg, cat)
	require.NoError(t, err)
	defer stores.Close()

	_, isMem := stores.Tables.(*memstore.Store)
	assert.True(t, isMem)
	assert.Same(t, stores.Tables, stores.Blobs)
}
