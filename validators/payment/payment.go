package paymentValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateIntent validator middleware
func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id"`
			Currency string `json:"currency"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate CourseID
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course id is required!"
		}

		// Validate Currency (3-letter ISO code when given)
		if reqData.Currency != "" && len(reqData.Currency) != 3 {
			errors["currency"] = "Currency must be a 3-letter code!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIntent", reqData)
		return c.Next()
	}
}
