package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a path param as a UUID; a malformed value is a 400.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" 값이 올바르지 않습니다")
	}
	return id, nil
}

// ParseUUIDQuery returns nil when the query key is absent.
func ParseUUIDQuery(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" 값이 올바르지 않습니다")
	}
	return &id, nil
}
