package courseController

import (
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// Enroll registers the user in a course. Free courses enroll directly;
// paid courses require a completed payment intent (normally created by
// the payment webhook, which enrolls on its own — this path covers
// clients that confirm payment first and enroll second).
func (ctrl *CourseController) Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// At most one enrollment per (user, course)
	var existing models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	if course.Type != models.CourseTypeFree {
		var payment models.PaymentIntent
		err := ctrl.DB.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, course.ID, models.PaymentCompleted, false).First(&payment).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment required before enrolling in this course!", nil)
		}
	}

	enrollment := models.Enrollment{
		UserID:        userID,
		CourseID:      course.ID,
		Status:        models.EnrollmentActive,
		CourseVersion: course.Version,
	}

	if err := ctrl.DB.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	// Best-effort extras
	go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	ctrl.Notifier.Notify(userID, models.NotifyEnrollment, "Enrollment successful",
		"You are now enrolled in "+course.Title, map[string]interface{}{"course_id": course.ID})
	ctrl.Notifier.LogActivity(userID, "ENROLLED", "course", course.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the user's enrollments with course summaries
func (ctrl *CourseController) GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseTitle string `json:"course_title"`
		CourseSlug  string `json:"course_slug"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course models.Course
		ctrl.DB.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:  e,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// LessonView is a lesson as the learner sees it: completion and lock
// state resolved, content withheld while locked
type LessonView struct {
	models.Lesson
	IsCompleted bool `json:"is_completed"`
	IsLocked    bool `json:"is_locked"`
}

// SectionView groups lesson views under their section
type SectionView struct {
	models.Section
	Lessons []LessonView `json:"lessons"`
}

// GetLearnView returns the full learning surface for an enrollment:
// outline, per-lesson completion and freshly computed lock state.
func (ctrl *CourseController) GetLearnView(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", enrollment.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	ordered, err := services.OrderedCourseLessons(ctrl.DB, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var progress []models.LessonProgress
	if err := ctrl.DB.Where("enrollment_id = ?", enrollment.ID).Find(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completed := services.CompletedLessonSet(progress)

	views := make(map[uint]LessonView, len(ordered))
	for _, lesson := range ordered {
		view := LessonView{
			Lesson:      lesson,
			IsCompleted: completed[lesson.ID],
			IsLocked:    services.IsLessonLocked(course, lesson, ordered, completed),
		}
		if view.IsLocked {
			view.Content = nil
		}
		views[lesson.ID] = view
	}

	var sections []models.Section
	if err := ctrl.DB.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	outline := make([]SectionView, len(sections))
	for i, section := range sections {
		outline[i] = SectionView{Section: section, Lessons: []LessonView{}}
		for _, lesson := range ordered {
			if lesson.SectionID == section.ID {
				outline[i].Lessons = append(outline[i].Lessons, views[lesson.ID])
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning view fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"course":     course,
		"sections":   outline,
	})
}
