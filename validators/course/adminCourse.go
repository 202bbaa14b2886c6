package courseValidator

import (
	"regexp"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func isValidLessonType(t string) bool {
	switch t {
	case models.LessonTypeVideo, models.LessonTypeMaterial, models.LessonTypeLiveSession,
		models.LessonTypeAssignment, models.LessonTypeQuiz, models.LessonTypeExam,
		models.LessonTypeDiscussion:
		return true
	}
	return false
}

func isValidQuestionType(t string) bool {
	switch t {
	case models.QuestionMultipleChoice, models.QuestionTrueFalse, models.QuestionShortAnswer:
		return true
	}
	return false
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title                       string  `json:"title"`
			Slug                        string  `json:"slug"`
			Description                 string  `json:"description"`
			Category                    string  `json:"category"`
			Level                       string  `json:"level"`
			Type                        string  `json:"type"`
			Price                       float64 `json:"price"`
			RequireSequentialCompletion bool    `json:"require_sequential_completion"`
			RequireManualApproval       bool    `json:"require_manual_approval"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Slug
		if !slugPattern.MatchString(reqData.Slug) {
			errors["slug"] = "Slug must be lowercase letters, digits and hyphens!"
		}

		// Validate Type
		switch reqData.Type {
		case "", models.CourseTypeFree, models.CourseTypePaid, models.CourseTypePremium:
		default:
			errors["type"] = "Type must be FREE, PAID or PREMIUM!"
		}

		// Validate Price
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if (reqData.Type == models.CourseTypePaid || reqData.Type == models.CourseTypePremium) && reqData.Price <= 0 {
			errors["price"] = "Paid courses need a price greater than 0!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware; all fields optional
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			Category    *string  `json:"category"`
			Level       *string  `json:"level"`
			Price       *float64 `json:"price"`
			Version     *string  `json:"version"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Version != nil && strings.TrimSpace(*reqData.Version) == "" {
			errors["version"] = "Version cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateSection validator middleware
func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			SectionID  uint                   `json:"section_id"`
			Title      string                 `json:"title"`
			Type       string                 `json:"type"`
			Content    map[string]interface{} `json:"content"`
			OrderIndex int                    `json:"order_index"`
			Duration   int                    `json:"duration"`
			IsFree     bool                   `json:"is_free"`
			IsRequired *bool                  `json:"is_required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SectionID == 0 {
			errors["section_id"] = "Section id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if !isValidLessonType(reqData.Type) {
			errors["type"] = "Invalid lesson type!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}
		if reqData.Type == models.LessonTypeVideo && reqData.Duration == 0 {
			errors["duration"] = "Video lessons need a duration!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// CreateQuiz validator middleware
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return nil
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			LessonID     uint   `json:"lesson_id"`
			Title        string `json:"title"`
			PassingScore int    `json:"passing_score"`
			MaxAttempts  int    `json:"max_attempts"`
			Questions    []struct {
				Type          string   `json:"type"`
				Prompt        string   `json:"prompt"`
				Options       []string `json:"options"`
				CorrectAnswer string   `json:"correct_answer"`
				Points        int      `json:"points"`
			} `json:"questions"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if reqData.MaxAttempts < 0 {
			errors["max_attempts"] = "Max attempts cannot be negative!"
		}
		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}
		for _, q := range reqData.Questions {
			if !isValidQuestionType(q.Type) {
				errors["questions"] = "Invalid question type!"
				break
			}
			if strings.TrimSpace(q.Prompt) == "" {
				errors["questions"] = "Every question needs a prompt!"
				break
			}
			if strings.TrimSpace(q.CorrectAnswer) == "" {
				errors["questions"] = "Every question needs a correct answer!"
				break
			}
			if q.Type == models.QuestionMultipleChoice && len(q.Options) < 2 {
				errors["questions"] = "Multiple choice questions need at least 2 options!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
