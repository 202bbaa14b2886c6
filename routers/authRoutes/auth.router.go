package authRoutes

import (
	controllers "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(app *fiber.App, ctrl *controllers.AuthController) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", validators.Register(), ctrl.Register)
	authGroup.Post("/login", validators.Login(), ctrl.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, ctrl.Profile)
}
