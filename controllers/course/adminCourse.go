package courseController

import (
	"encoding/json"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ownedCourse loads a course and enforces that the requester is its
// instructor (or an admin). Returns nil after writing the error response.
func (ctrl *CourseController) ownedCourse(c *fiber.Ctx, courseID int) *models.Course {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil
	}

	if course.InstructorID != userID && role != models.RoleAdmin {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
		return nil
	}

	return &course
}

// CreateCourse creates a draft course owned by the requesting instructor
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Slug must be unique across courses
	if err := ctrl.DB.Where("slug = ? AND is_deleted = ?", reqData.Slug, false).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
	}

	courseType := reqData.Type
	if courseType == "" {
		courseType = models.CourseTypeFree
	}

	course := models.Course{
		Title:                       reqData.Title,
		Slug:                        reqData.Slug,
		Description:                 reqData.Description,
		Category:                    reqData.Category,
		Level:                       reqData.Level,
		Type:                        courseType,
		Price:                       reqData.Price,
		InstructorID:                userID,
		RequireSequentialCompletion: reqData.RequireSequentialCompletion,
		RequireManualApproval:       reqData.RequireManualApproval,
	}

	if err := ctrl.DB.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	ctrl.Notifier.LogActivity(userID, "COURSE_CREATED", "course", course.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits course metadata and bumps the version string so
// existing enrollments keep pointing at the material they enrolled for
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Level       *string  `json:"level"`
		Price       *float64 `json:"price"`
		Version     *string  `json:"version"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Version != nil {
		course.Version = *reqData.Version
	}

	if err := ctrl.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse toggles a course's publish state
func (ctrl *CourseController) PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	reqData := new(struct {
		IsPublished bool `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course.IsPublished = reqData.IsPublished
	if err := ctrl.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update publish state!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Publish state updated!", course)
}

// DeleteCourse soft-deletes a course
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := ctrl.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateSection adds an ordered section to a course
func (ctrl *CourseController) CreateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := models.Section{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := ctrl.DB.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// CreateLesson adds a lesson to a section with its type-dependent content payload
func (ctrl *CourseController) CreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		SectionID  uint                   `json:"section_id"`
		Title      string                 `json:"title"`
		Type       string                 `json:"type"`
		Content    map[string]interface{} `json:"content"`
		OrderIndex int                    `json:"order_index"`
		Duration   int                    `json:"duration"`
		IsFree     bool                   `json:"is_free"`
		IsRequired *bool                  `json:"is_required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var section models.Section
	if err := ctrl.DB.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.SectionID, course.ID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found in this course!", nil)
	}

	var content datatypes.JSON
	if reqData.Content != nil {
		raw, err := json.Marshal(reqData.Content)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson content!", nil)
		}
		content = datatypes.JSON(raw)
	}

	isRequired := true
	if reqData.IsRequired != nil {
		isRequired = *reqData.IsRequired
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		SectionID:  section.ID,
		Title:      reqData.Title,
		Type:       reqData.Type,
		Content:    content,
		OrderIndex: reqData.OrderIndex,
		Duration:   reqData.Duration,
		IsFree:     reqData.IsFree,
		IsRequired: isRequired,
	}

	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// CreateQuiz attaches a quiz (with questions) to a course
func (ctrl *CourseController) CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course := ctrl.ownedCourse(c, courseID)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	passingScore := reqData.PassingScore
	if passingScore <= 0 {
		passingScore = 70
	}

	quiz := models.Quiz{
		CourseID:     course.ID,
		LessonID:     reqData.LessonID,
		Title:        reqData.Title,
		PassingScore: passingScore,
		MaxAttempts:  reqData.MaxAttempts,
	}

	// Quiz and questions land together or not at all
	tx := ctrl.DB.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for i, q := range reqData.Questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}

		var options datatypes.JSON
		if q.Options != nil {
			raw, _ := json.Marshal(q.Options)
			options = datatypes.JSON(raw)
		}

		question := models.Question{
			QuizID:        quiz.ID,
			Type:          q.Type,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			OrderIndex:    i + 1,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}
