package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/communities/cells/controller"
	"churchbook_backend/internals/features/communities/cells/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

func CellRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewCellController(service.NewCellService(store))

	cells := r.Group("/cells")
	cells.Get("/", ctl.List)
	cells.Get("/:id", ctl.Get)

	staff := authMiddleware.OnlyStaff("셀 관리")
	cells.Post("/", staff, ctl.Create)
	cells.Put("/:id", staff, ctl.Update)
	cells.Delete("/:id", staff, ctl.Delete)
}
