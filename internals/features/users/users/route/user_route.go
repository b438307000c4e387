package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "churchbook_backend/internals/features/users/users/controller"
	"churchbook_backend/internals/features/users/users/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

// UserRoutes mounts /users on an authenticated router.
func UserRoutes(r fiber.Router, store repository.Store) {
	ctl := userController.NewUserController(service.NewUserService(store))

	users := r.Group("/users")
	users.Get("/me", ctl.Me)
	users.Get("/", ctl.List)
	users.Get("/:id", ctl.Get)

	// ===== staff only =====
	staff := authMiddleware.OnlyStaff("사용자 관리")
	users.Post("/", staff, ctl.Create)
	users.Put("/:id", staff, ctl.Update)
	users.Delete("/:id", staff, ctl.Delete)
	users.Put("/:id/role", staff, ctl.ChangeRole)
	users.Put("/:id/password", staff, ctl.SetPassword)
}
