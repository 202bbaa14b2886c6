package adminValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// AssignAssessors validator middleware
func AssignAssessors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course_id"`
			UserIDs  []uint `json:"user_ids"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate CourseID
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course id is required!"
		}

		// Validate UserIDs
		if len(reqData.UserIDs) == 0 {
			errors["user_ids"] = "At least one assessor is required!"
		}
		for _, id := range reqData.UserIDs {
			if id == 0 {
				errors["user_ids"] = "User ids must be positive!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessors", reqData)
		return c.Next()
	}
}
