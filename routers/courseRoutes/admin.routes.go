package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseAdminRoutes sets up authoring routes for instructors and admins
func SetupCourseAdminRoutes(app *fiber.App, ctrl *controllers.CourseController) {
	adminGroup := app.Group("/api/courses", middleware.JWTMiddleware, middleware.RequireCapability(middleware.CapManageCourses))

	adminGroup.Post("/", validators.CreateCourse(), ctrl.CreateCourse)
	adminGroup.Patch("/:id", validators.UpdateCourse(), ctrl.UpdateCourse)
	adminGroup.Post("/:id/publish", validators.CourseID(), ctrl.PublishCourse)
	adminGroup.Delete("/:id", validators.CourseID(), ctrl.DeleteCourse)

	adminGroup.Post("/:id/sections", validators.CreateSection(), ctrl.CreateSection)
	adminGroup.Post("/:id/lessons", validators.CreateLesson(), ctrl.CreateLesson)
	adminGroup.Post("/:id/quizzes", validators.CreateQuiz(), ctrl.CreateQuiz)
}
