package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "churchbook_backend/internals/databases"
)

// BaseRoutes registers liveness endpoints. ping is injectable for tests.
func BaseRoutes(app *fiber.App, env string, ping func() error) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("churchbook backend 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if ping == nil || ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    env,
		})
	})
}

func dbPing(db *gorm.DB) func() error {
	if db == nil {
		return nil
	}
	return func() error { return database.Ping(db) }
}
