package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/constants"
	helper "churchbook_backend/internals/helpers"
)

// RequireRole lets the request through when the token's role is at least min.
// forbiddenMsg is the 403 message.
func RequireRole(min constants.Role, forbiddenMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return err
		}
		if !role.IsAtLeast(min) {
			return fiber.NewError(fiber.StatusForbidden, forbiddenMsg)
		}
		return c.Next()
	}
}

// Shortcuts
func OnlyStaff(feature string) fiber.Handler {
	return RequireRole(constants.RoleJuniorPastor, constants.RoleErrorStaff(feature))
}

func OnlyLeaders(feature string) fiber.Handler {
	return RequireRole(constants.RoleLeader, constants.RoleErrorLeader(feature))
}

const HeaderAdminKey = "X-Admin-Key"

// RequireAdminKey guards church administration. An empty configured key closes the
// routes entirely.
func RequireAdminKey(key string) fiber.Handler {
	want := []byte(strings.TrimSpace(key))
	return func(c *fiber.Ctx) error {
		got := []byte(strings.TrimSpace(c.Get(HeaderAdminKey)))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "관리자 키가 올바르지 않습니다")
		}
		return c.Next()
	}
}
