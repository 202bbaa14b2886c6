package courseController

import (
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseController serves the public catalog and the authoring endpoints
type CourseController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
}

func New(db *gorm.DB, notifier *utils.Notifier) *CourseController {
	return &CourseController{DB: db, Notifier: notifier}
}

// GetAllCourses lists published courses with pagination and optional filters
func (ctrl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}
	if courseType := c.Query("type"); courseType != "" {
		db = db.Where("type = ?", courseType)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// SectionWithLessons is the course outline entry returned on detail views
type SectionWithLessons struct {
	models.Section
	Lessons []models.Lesson `json:"lessons"`
}

// GetCourseDetails returns a published course with its outline.
// Lesson content payloads are stripped unless the lesson is free.
func (ctrl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	outline, err := ctrl.courseOutline(course.ID, false)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course outline!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"sections": outline,
	})
}

// courseOutline assembles ordered sections with their ordered lessons.
// When includeContent is false, only free lessons keep their payload.
func (ctrl *CourseController) courseOutline(courseID uint, includeContent bool) ([]SectionWithLessons, error) {
	var sections []models.Section
	if err := ctrl.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&sections).Error; err != nil {
		return nil, err
	}

	outline := make([]SectionWithLessons, len(sections))
	for i, section := range sections {
		var lessons []models.Lesson
		if err := ctrl.DB.Where("section_id = ? AND is_deleted = ?", section.ID, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, err
		}

		if !includeContent {
			for j := range lessons {
				if !lessons[j].IsFree {
					lessons[j].Content = nil
				}
			}
		}

		outline[i] = SectionWithLessons{Section: section, Lessons: lessons}
	}

	return outline, nil
}
