package route

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/users/auth/controller"
	"churchbook_backend/internals/features/users/auth/service"
	helperAuth "churchbook_backend/internals/helpers/auth"
	rateLimiter "churchbook_backend/internals/middlewares"
	"churchbook_backend/internals/repository"
)

// AuthRoutes must be mounted before AuthJWT: none of these require a valid access token.
func AuthRoutes(r fiber.Router, store repository.Store, signer *helperAuth.Signer) {
	authController := controller.NewAuthController(service.NewAuthService(store, signer))

	auth := r.Group("/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/refresh", authController.Refresh)
	auth.Post("/logout", authController.Logout)
}
