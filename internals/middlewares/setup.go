package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"churchbook_backend/internals/configs"
	"churchbook_backend/internals/middlewares/logger"
)

// RequestID sets X-Request-ID and bounds the request context.
func RequestID(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		// HTTP timeout guard, kept in line with the DB statement_timeout
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *zap.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestID(5 * time.Second))
	app.Use(logger.LoggerMiddleware(log))
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
}
