package courseController

import (
	"time"

	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompleteLesson is the single write path for lesson completion:
// enrollment check, lock check, completion evaluator, progress upsert,
// then a synchronous progress recompute.
func (ctrl *CourseController) CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	payload, ok := c.Locals("validatedCompletion").(*services.CompletionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson models.Lesson
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", lesson.CourseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Lock state is computed fresh for every request
	ordered, err := services.OrderedCourseLessons(ctrl.DB, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var progressRecords []models.LessonProgress
	if err := ctrl.DB.Where("enrollment_id = ?", enrollment.ID).Find(&progressRecords).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	completed := services.CompletedLessonSet(progressRecords)

	if services.IsLessonLocked(course, lesson, ordered, completed) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the earlier lessons first!", fiber.Map{
			"lesson_id": lesson.ID,
		})
	}

	// The evaluator alone decides whether the payload earns completion
	result, err := services.ValidateCompletion(ctrl.DB, lesson, userID, *payload)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to evaluate completion!", nil)
	}
	if !result.Allowed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, result.Reason, result.Details)
	}

	// LessonProgress rows are created lazily on first interaction
	now := time.Now()
	var progress models.LessonProgress
	err = ctrl.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson progress!", nil)
		}
		progress = models.LessonProgress{
			EnrollmentID: enrollment.ID,
			LessonID:     lesson.ID,
		}
	}

	progress.IsCompleted = true
	progress.CompletedAt = &now
	if payload.WatchTime > progress.WatchTime {
		progress.WatchTime = payload.WatchTime
	}

	if err := ctrl.DB.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save lesson progress!", nil)
	}

	// Certificate eligibility reads the status this writes, so the
	// recompute happens before the response, not eventually
	percent, err := services.RecomputeProgress(ctrl.DB, enrollment.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if percent >= 100 && enrollment.Status != models.EnrollmentCompleted {
		ctrl.Notifier.Notify(userID, models.NotifyCourseCompleted, "Course completed",
			"Congratulations! You completed "+course.Title, map[string]interface{}{"course_id": course.ID})
	}
	ctrl.Notifier.LogActivity(userID, "LESSON_COMPLETED", "lesson", lesson.ID, map[string]interface{}{
		"course_id": course.ID,
		"progress":  percent,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", fiber.Map{
		"lesson_progress": progress,
		"progress":        percent,
	})
}
