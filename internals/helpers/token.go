package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Raw JWT as stored in Locals by the auth middleware
const LocRawToken = "raw_token"

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is case-insensitive and surrounding quotes are stripped.
func BearerToken(c *fiber.Ctx) (string, bool) {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	return tok, tok != ""
}

func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && v != "" {
		return v
	}
	tok, _ := BearerToken(c)
	return tok
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if raw = strings.TrimSpace(raw); raw != "" {
		c.Locals(LocRawToken, raw)
	}
}
