package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoggerMiddleware writes one access line per request through zap.
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	access := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.Any("reqid", c.Locals("reqid")),
		}
		if status >= fiber.StatusInternalServerError {
			access.Warn("request", fields...)
		} else {
			access.Info("request", fields...)
		}
		return err
	}
}
