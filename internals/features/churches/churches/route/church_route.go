package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/churches/churches/controller"
	"churchbook_backend/internals/features/churches/churches/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

// ChurchAdminRoutes: church management behind X-Admin-Key, no user token needed.
func ChurchAdminRoutes(r fiber.Router, store repository.Store, adminKey string) {
	ctl := controller.NewChurchController(service.NewChurchService(store))

	admin := r.Group("/churches", authMiddleware.RequireAdminKey(adminKey))
	admin.Post("/", ctl.Create)
	admin.Get("/", ctl.List)
	admin.Get("/:id", ctl.Get)
	admin.Put("/:id", ctl.Update)
	admin.Delete("/:id", ctl.Delete)
}

// ChurchUserRoutes: the caller's own church, on an authenticated router.
func ChurchUserRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewChurchController(service.NewChurchService(store))
	r.Get("/church", ctl.Mine)
}
