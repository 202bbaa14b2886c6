package courseValidator

import (
	"strconv"

	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a positive integer route parameter. On failure it
// writes the error response itself and reports false.
func parseID(c *fiber.Ctx, param string) (int, bool) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id < 1 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		return 0, false
	}
	return id, true
}

// paramID stores a parsed route parameter under a local and continues
func paramID(c *fiber.Ctx, param, local string) error {
	id, ok := parseID(c, param)
	if !ok {
		return nil
	}
	c.Locals(local, id)
	return c.Next()
}

// CourseList validator middleware for the catalog listing
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "courseID")
	}
}

// Enrollment validator middleware
func Enrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_id": "Course id is required!",
			})
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// LearnView validates the enrollment :id route parameter
func LearnView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "enrollmentID")
	}
}

// CompleteLesson validates the :id parameter and the completion payload.
// An empty body is a valid payload (MATERIAL and similar lesson types).
func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}

		payload := new(services.CompletionPayload)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(payload); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if payload.WatchTime < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"watch_time": "Watch time cannot be negative!",
			})
		}

		c.Locals("lessonID", id)
		c.Locals("validatedCompletion", payload)
		return c.Next()
	}
}

// GetQuiz validates the quiz :id route parameter
func GetQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return paramID(c, "id", "quizID")
	}
}

// SubmitQuiz validates the :id parameter and the answers payload
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "At least one answer is required!",
			})
		}

		c.Locals("quizID", id)
		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}

// CertificateRequest validator middleware
func CertificateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_id": "Course id is required!",
			})
		}

		c.Locals("validatedCertificateRequest", reqData)
		return c.Next()
	}
}

// CertificateReview validates the :id parameter and stamps the review
// outcome for the approve and reject routes
func CertificateReview(approve bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}

		c.Locals("certificateID", id)
		c.Locals("reviewAction", approve)
		return c.Next()
	}
}
