package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	adminValidators "lms/validators/admin"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the dashboard and assessor assignment routes
func SetupAdminRoutes(app *fiber.App, ctrl *controllers.AdminController) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware)

	adminGroup.Get("/dashboard", middleware.RequireCapability(middleware.CapViewAdminDashboard), ctrl.Dashboard)
	adminGroup.Post("/assessors", middleware.RequireCapability(middleware.CapManageAssessors), adminValidators.AssignAssessors(), ctrl.AssignAssessors)
	adminGroup.Get("/courses/:id/assessors", middleware.RequireCapability(middleware.CapManageAssessors), courseValidators.CourseID(), ctrl.GetAssessors)
}
