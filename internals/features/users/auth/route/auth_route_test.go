package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"churchbook_backend/internals/constants"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository/memory"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	} `json:"data"`
}

func newApp(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	signer, err := helperAuth.NewSigner("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	ch := &churchModel.ChurchModel{Name: "사랑의교회"}
	require.NoError(t, store.CreateChurch(ctx, ch))
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	require.NoError(t, store.CreateUser(ctx, &userModel.UserModel{
		ChurchID: ch.ID, Name: "김셀장", Role: constants.RoleLeader, Rank: constants.RankSaint, Password: &h,
	}))

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	api := app.Group("/api/v1")
	AuthRoutes(api, store, signer)
	api.Use(authMiddleware.AuthJWT(signer, zap.NewNop()))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		return helper.JsonOK(c, "ok", fiber.Map{"id": id})
	})
	return app, ch.ID
}

func do(t *testing.T, app *fiber.App, method, path string, body any, bearer string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestAuthFlow(t *testing.T) {
	app, church := newApp(t)

	resp, login := do(t, app, http.MethodPost, "/api/v1/auth/login",
		fiber.Map{"church_id": church, "name": "김셀장", "password": "secret-pw"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Data.AccessToken)
	require.NotEmpty(t, login.Data.RefreshToken)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/whoami", nil, login.Data.AccessToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, refreshed := do(t, app, http.MethodPost, "/api/v1/auth/refresh",
		fiber.Map{"access_token": login.Data.AccessToken, "refresh_token": login.Data.RefreshToken}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, refreshed.Data.AccessToken)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/logout", nil, login.Data.AccessToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, failed := do(t, app, http.MethodPost, "/api/v1/auth/refresh",
		fiber.Map{"access_token": login.Data.AccessToken, "refresh_token": login.Data.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, failed.Success)
	assert.Equal(t, "인증에 실패했습니다", failed.Message)
}

func TestAuthRejections(t *testing.T) {
	app, church := newApp(t)

	resp, env := do(t, app, http.MethodPost, "/api/v1/auth/login",
		fiber.Map{"church_id": church, "name": "김셀장", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "인증에 실패했습니다", env.Message)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{"name": "김셀장"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/whoami", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/whoami", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
