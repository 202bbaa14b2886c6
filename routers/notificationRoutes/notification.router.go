package notificationRoutes

import (
	controllers "lms/controllers/notification"
	"lms/middleware"
	validators "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the in-app notification feed routes
func SetupNotificationRoutes(app *fiber.App, ctrl *controllers.NotificationController) {
	notificationGroup := app.Group("/api/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("/", validators.NotificationList(), ctrl.GetNotifications)
	notificationGroup.Patch("/read-all", ctrl.MarkAllRead)
	notificationGroup.Patch("/:id/read", validators.NotificationID(), ctrl.MarkRead)
}
