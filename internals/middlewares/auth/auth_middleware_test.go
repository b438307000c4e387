package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchbook_backend/internals/constants"
	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
)

func newSigner(t *testing.T) *helperAuth.Signer {
	t.Helper()
	s, err := helperAuth.NewSigner("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return s
}

func token(t *testing.T, s *helperAuth.Signer, role constants.Role) string {
	t.Helper()
	raw, err := s.IssueAccess(helperAuth.Subject{
		TokenID: uuid.New(), ChurchID: uuid.New(), UserID: uuid.New(), Name: "홍길동", Role: role,
	})
	require.NoError(t, err)
	return raw
}

func newApp(s *helperAuth.Signer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	app.Use(AuthJWT(s, zap.NewNop()))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	app.Post("/api/v1/auth/login", ok)
	app.Get("/any", ok)
	app.Get("/leaders", OnlyLeaders("테스트"), ok)
	app.Get("/staff", OnlyStaff("테스트"), ok)
	app.Get("/claims", func(c *fiber.Ctx) error {
		if _, err := helper.GetChurchIDFromToken(c); err != nil {
			return err
		}
		if _, err := helper.GetTokenIDFromToken(c); err != nil {
			return err
		}
		if helper.GetRawAccessToken(c) == "" {
			return fiber.ErrTeapot
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func status(t *testing.T, app *fiber.App, method, path, bearer string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	s := newSigner(t)
	app := newApp(s)

	assert.Equal(t, http.StatusNoContent, status(t, app, http.MethodPost, "/api/v1/auth/login", ""))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, http.MethodGet, "/any", ""))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, http.MethodGet, "/any", "garbage"))
	assert.Equal(t, http.StatusNoContent, status(t, app, http.MethodGet, "/claims", token(t, s, constants.RoleMember)))

	expired := s.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	assert.Equal(t, http.StatusUnauthorized, status(t, app, http.MethodGet, "/any", token(t, expired, constants.RolePastor)))

	other, err := helperAuth.NewSigner("other", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status(t, app, http.MethodGet, "/any", token(t, other, constants.RolePastor)))
}

func TestRequireRole(t *testing.T) {
	s := newSigner(t)
	app := newApp(s)

	cases := []struct {
		role    constants.Role
		leaders int
		staff   int
	}{
		{constants.RoleNewbie, http.StatusForbidden, http.StatusForbidden},
		{constants.RoleMember, http.StatusForbidden, http.StatusForbidden},
		{constants.RoleLeader, http.StatusNoContent, http.StatusForbidden},
		{constants.RoleFamilyLeader, http.StatusNoContent, http.StatusForbidden},
		{constants.RoleJuniorPastor, http.StatusNoContent, http.StatusNoContent},
		{constants.RolePastor, http.StatusNoContent, http.StatusNoContent},
	}
	for _, tc := range cases {
		tok := token(t, s, tc.role)
		assert.Equal(t, tc.leaders, status(t, app, http.MethodGet, "/leaders", tok), tc.role.Key())
		assert.Equal(t, tc.staff, status(t, app, http.MethodGet, "/staff", tok), tc.role.Key())
	}
}

func TestRequireAdminKey(t *testing.T) {
	open := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	open.Get("/", RequireAdminKey("k3y"), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	closed := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	closed.Get("/", RequireAdminKey(""), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	send := func(app *fiber.App, key string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if key != "" {
			req.Header.Set(HeaderAdminKey, key)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, send(open, "k3y"))
	assert.Equal(t, http.StatusUnauthorized, send(open, "nope"))
	assert.Equal(t, http.StatusUnauthorized, send(open, ""))
	assert.Equal(t, http.StatusUnauthorized, send(closed, ""))
}
