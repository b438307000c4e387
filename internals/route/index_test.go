package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchbook_backend/internals/configs"
	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository/memory"
)

const adminKey = "admin-key"

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _, _ := newAppWithStore(t)
	return app
}

func newAppWithStore(t *testing.T) (*fiber.App, *memory.Store, *helperAuth.Signer) {
	t.Helper()
	signer, err := helperAuth.NewSigner("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	cfg := &configs.Config{AppEnv: "test", AdminAPIKey: adminKey}

	store := memory.New()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	SetupRoutes(app, store, signer, cfg, zap.NewNop(), nil)
	return app, store, signer
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	startTime = time.Now()
	BaseRoutes(app, "test", func() error { return nil })
	status, body := call(t, app, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["status"])

	down := fiber.New()
	BaseRoutes(down, "test", func() error { return errors.New("down") })
	status, body = call(t, down, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "DOWN", body["status"])
}

func TestRouting_PublicBeforePrivate(t *testing.T) {
	app := newApp(t)

	church := map[string]any{
		"name":            "사랑의교회",
		"manager_name":    "관리자",
		"manager_contact": "010-0000-0000",
		"pastor":          map[string]any{"name": "담임목사", "password": "very-secret"},
	}

	status, _ := call(t, app, http.MethodPost, "/api/v1/churches", church, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, created := call(t, app, http.MethodPost, "/api/v1/churches", church,
		map[string]string{authMiddleware.HeaderAdminKey: adminKey})
	require.Equal(t, http.StatusCreated, status)
	churchID := created["data"].(map[string]any)["id"]

	status, _ = call(t, app, http.MethodGet, "/api/v1/users/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, login := call(t, app, http.MethodPost, "/api/v1/auth/login",
		map[string]any{"church_id": churchID, "name": "담임목사", "password": "very-secret"}, nil)
	require.Equal(t, http.StatusOK, status)
	token := login["data"].(map[string]any)["access_token"].(string)
	bearer := map[string]string{fiber.HeaderAuthorization: "Bearer " + token}

	status, me := call(t, app, http.MethodGet, "/api/v1/users/me", nil, bearer)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "담임목사", me["data"].(map[string]any)["name"])

	status, _ = call(t, app, http.MethodPost, "/api/v1/groups",
		map[string]any{"name": "1팸"}, bearer)
	assert.NotEqual(t, http.StatusUnauthorized, status)
}
