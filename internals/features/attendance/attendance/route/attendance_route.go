package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/attendance/attendance/controller"
	"churchbook_backend/internals/features/attendance/attendance/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

// AttendanceRoutes: the cell leader check happens in the service.
func AttendanceRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewAttendanceController(service.NewAttendanceService(store))

	g := r.Group("/attendance")
	g.Get("/cells/:cellId", ctl.ListByCell)
	g.Post("/cells/:cellId", authMiddleware.OnlyLeaders("출석 체크"), ctl.Check)
	g.Get("/users/:userId", ctl.ListByUser)
}
