package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/service"
	"github.com/mindthevirt/binge-master-api/internal/storage/memstorage"
)

type testEnv struct {
	router  *gin.Engine
	apiKeys *memstorage.APIKeyRepository
	users   *memstorage.UserRepository
	events  *memstorage.WatchtimeRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	apiKeys := memstorage.NewAPIKeyRepository()
	users := memstorage.NewUserRepository()
	events := memstorage.NewWatchtimeRepository()

	router := NewRouter(RouterDeps{
		APIKeyHandler:    NewAPIKeyHandler(service.NewAPIKeyService(apiKeys, logger), logger),
		UserHandler:      NewUserHandler(service.NewUserService(users, logger), logger),
		WatchtimeHandler: NewWatchtimeHandler(service.NewWatchtimeService(events, logger), logger),
		APIKeyRepo:       apiKeys,
		AllowOrigins:     []string{"chrome-extension://*", "https://binge-master.mindthevirt.com"},
		Logger:           logger,
	})

	return &testEnv{router: router, apiKeys: apiKeys, users: users, events: events}
}

func (e *testEnv) do(method, path, apiKey, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) generateKey(t *testing.T) string {
	t.Helper()

	w := e.do(http.MethodPost, "/generate-api-key", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		APIKey string `json:"api_key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.APIKey)
	return resp.APIKey
}

func TestGenerateAPIKey_ReturnsUsableKey(t *testing.T) {
	env := newTestEnv(t)

	key := env.generateKey(t)

	// Raw tokens are never persisted, only digests.
	for _, h := range env.apiKeys.StoredHashes() {
		assert.NotEqual(t, key, h)
	}
}

func TestUpdateThenGetWatchtime(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	w := env.do(http.MethodPost, "/update", key, `{"uniqueIdentifier":"u1","watchtime":120000}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Data received"}`, w.Body.String())

	w = env.do(http.MethodGet, "/get-watchtime?uniqueIdentifier=u1", key, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			Timestamp string `json:"timestamp"`
			Watchtime int64  `json:"watchtime"`
		} `json:"data"`
		TotalWatchtime int64 `json:"total_watchtime"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(120000), resp.Data[0].Watchtime)
	assert.NotEmpty(t, resp.Data[0].Timestamp)
	assert.Equal(t, int64(120000), resp.TotalWatchtime)
}

func TestGetWatchtime_UnknownIdentifier(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	w := env.do(http.MethodGet, "/get-watchtime?uniqueIdentifier=unknown", key, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[],"total_watchtime":0}`, w.Body.String())
}

func TestRegister_ThenDuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	body := `{"email":"a@b.com","uniqueIdentifier":"u1"}`

	w := env.do(http.MethodPost, "/register", key, body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, w.Body.String())

	w = env.do(http.MethodPost, "/register", key, body)
	require.Equal(t, http.StatusConflict, w.Code)

	var errResp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.Error)

	assert.Equal(t, 1, env.users.Count(), "conflict must leave exactly one record")
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	cases := map[string]string{
		"missing email":      `{"uniqueIdentifier":"u1"}`,
		"missing identifier": `{"email":"a@b.com"}`,
		"empty body":         `{}`,
		"malformed json":     `{"email":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/register", key, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}

	assert.Zero(t, env.users.Count())
}

func TestUpdate_RejectsNegativeWatchtime(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	w := env.do(http.MethodPost, "/update", key, `{"uniqueIdentifier":"u1","watchtime":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.events.Count())
}

func TestUpdate_DefaultsTrackingAndLimit(t *testing.T) {
	env := newTestEnv(t)
	key := env.generateKey(t)

	w := env.do(http.MethodPost, "/update", key, `{"uniqueIdentifier":"u1","watchtime":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	events, err := env.events.ListRecent(context.Background(), "u1", service.DefaultWindowDays)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].TrackingEnabled, "tracking defaults to enabled")
	assert.Zero(t, events[0].DailyLimitMs)
	assert.Zero(t, events[0].WatchtimeMs, "a zero sample is a valid sample")
}

func TestProtectedRoutes_RejectMissingOrInvalidKey(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/update", `{"uniqueIdentifier":"u1","watchtime":1000}`},
		{http.MethodGet, "/get-watchtime?uniqueIdentifier=u1", ""},
		{http.MethodPost, "/register", `{"email":"a@b.com","uniqueIdentifier":"u1"}`},
	}

	for _, rt := range routes {
		w := env.do(rt.method, rt.path, "", rt.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without key", rt.method, rt.path)
		assert.JSONEq(t, `{"error":"No API key provided"}`, w.Body.String())

		w = env.do(rt.method, rt.path, "not-a-real-key", rt.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with bogus key", rt.method, rt.path)
		assert.JSONEq(t, `{"error":"Invalid API key"}`, w.Body.String())
	}

	// An unauthenticated call must not leave any persistence side effect.
	assert.Zero(t, env.users.Count())
	assert.Zero(t, env.events.Count())
}

func TestPreflight_SucceedsWithoutAPIKey(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/update", nil)
	req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key, Content-Type")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/update", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
