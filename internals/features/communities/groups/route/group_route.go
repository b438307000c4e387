package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/communities/groups/controller"
	"churchbook_backend/internals/features/communities/groups/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

// GroupRoutes serves the same handlers under /groups and /families.
func GroupRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewGroupController(service.NewGroupService(store))
	staff := authMiddleware.OnlyStaff("팸 관리")

	for _, prefix := range []string{"/groups", "/families"} {
		g := r.Group(prefix)
		g.Get("/", ctl.List)
		g.Get("/:id", ctl.Get)
		g.Post("/", staff, ctl.Create)
		g.Put("/:id", staff, ctl.Update)
		g.Delete("/:id", staff, ctl.Delete)
	}
}
