package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"churchbook_backend/internals/constants"
)

// Locals keys filled by the auth middleware.
const (
	LocUserID   = "user_id"
	LocChurchID = "church_id"
	LocUserName = "user_name"
	LocUserRole = "userRole"
	LocTokenID  = "token_id"
)

const msgNotLoggedIn = "인증에 실패했습니다"

// GetUserIDFromToken reads c.Locals("user_id"); 401 when not signed in.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocUserID)
}

// GetChurchIDFromToken is the tenant scope of the authenticated user.
func GetChurchIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocChurchID)
}

func GetTokenIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocTokenID)
}

func GetRoleFromToken(c *fiber.Ctx) (constants.Role, error) {
	r, ok := c.Locals(LocUserRole).(constants.Role)
	if !ok || !r.Valid() {
		return 0, fiber.NewError(fiber.StatusUnauthorized, msgNotLoggedIn)
	}
	return r, nil
}

func uuidLocal(c *fiber.Ctx, key string) (uuid.UUID, error) {
	switch t := c.Locals(key).(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		if id, err := uuid.Parse(t); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msgNotLoggedIn)
}
