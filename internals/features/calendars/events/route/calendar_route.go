package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/calendars/events/controller"
	"churchbook_backend/internals/features/calendars/events/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

func CalendarRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewEventController(service.NewEventService(store))
	leaders := authMiddleware.OnlyLeaders("일정 관리")

	cal := r.Group("/calendars")
	cal.Get("/", ctl.List)
	cal.Get("/:id", ctl.Get)
	cal.Post("/", leaders, ctl.Create)
	cal.Put("/:id", leaders, ctl.Update)
	cal.Delete("/:id", leaders, ctl.Delete)
}
