package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing routes: catalog,
// enrollment, lesson completion, quizzes and certificates
func SetupCourseRoutes(app *fiber.App, ctrl *controllers.CourseController) {
	// Catalog (public)
	courseGroup := app.Group("/api/courses")
	courseGroup.Get("/", validators.CourseList(), ctrl.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), ctrl.GetCourseDetails)

	// Enrollment and the learning surface
	enrollGroup := app.Group("/api/enrollments", middleware.JWTMiddleware)
	enrollGroup.Post("/", validators.Enrollment(), ctrl.Enroll)
	enrollGroup.Get("/", ctrl.GetEnrollments)
	enrollGroup.Get("/:id/learn", validators.LearnView(), ctrl.GetLearnView)

	// Lesson completion
	app.Post("/api/lessons/:id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), ctrl.CompleteLesson)

	// Quizzes
	quizGroup := app.Group("/api/quizzes", middleware.JWTMiddleware)
	quizGroup.Get("/:id", validators.GetQuiz(), ctrl.GetQuiz)
	quizGroup.Post("/:id/submit", validators.SubmitQuiz(), ctrl.SubmitQuiz)

	// Certificates
	certGroup := app.Group("/api/certificates")
	certGroup.Get("/verify/:number", ctrl.VerifyCertificate)
	certGroup.Post("/", middleware.JWTMiddleware, validators.CertificateRequest(), ctrl.RequestCertificate)
	certGroup.Get("/", middleware.JWTMiddleware, ctrl.GetUserCertificates)
	certGroup.Patch("/:id/approve", middleware.JWTMiddleware, middleware.RequireCapability(middleware.CapReviewCertificates), validators.CertificateReview(true), ctrl.ReviewCertificate)
	certGroup.Patch("/:id/reject", middleware.JWTMiddleware, middleware.RequireCapability(middleware.CapReviewCertificates), validators.CertificateReview(false), ctrl.ReviewCertificate)
}
