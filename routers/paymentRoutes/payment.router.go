package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up payment intent, history and webhook routes.
// The webhook is unauthenticated; it carries its own HMAC signature.
func SetupPaymentRoutes(app *fiber.App, ctrl *controllers.PaymentController) {
	paymentGroup := app.Group("/api/payments")

	paymentGroup.Post("/intent", middleware.JWTMiddleware, validators.CreateIntent(), ctrl.CreateIntent)
	paymentGroup.Get("/", middleware.JWTMiddleware, ctrl.GetPayments)
	paymentGroup.Post("/webhook", ctrl.Webhook)
}
