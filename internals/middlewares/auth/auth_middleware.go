package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
)

// Paths served without a token even when mounted behind AuthJWT.
var skipPaths = map[string]struct{}{
	"/api/v1/auth/login":   {},
	"/api/v1/auth/refresh": {},
}

const msgUnauthorized = "인증에 실패했습니다"

// AuthJWT verifies the bearer access token and stores its claims in Locals. Every
// failure is the same 401 so callers learn nothing about which check failed.
func AuthJWT(signer *helperAuth.Signer, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		raw, ok := helper.BearerToken(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized)
		}
		claims, err := signer.ParseAccess(raw)
		if err != nil {
			log.Debug("access token rejected", zap.String("path", c.Path()), zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized)
		}
		if err := storeClaims(c, claims); err != nil {
			log.Debug("access token claims invalid", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized)
		}
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}
