package courseController

import (
	"encoding/json"
	"time"

	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetQuiz returns a quiz with its questions. Correct answers never leave
// the server (the model hides them from JSON).
func (ctrl *CourseController) GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz models.Quiz
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var questions []models.Question
	if err := ctrl.DB.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	var attempts int64
	ctrl.DB.Model(&models.ExamResult{}).Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).Count(&attempts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":          quiz,
		"questions":     questions,
		"attempts_used": attempts,
	})
}

// SubmitQuiz scores a submission and stores it as an immutable ExamResult.
// Attempts beyond the quiz's limit are rejected before scoring.
func (ctrl *CourseController) SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedQuizSubmission").(*struct {
		Answers map[string]string `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz models.Quiz
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	attemptNumber, err := services.NextAttemptNumber(ctrl.DB, userID, quiz.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check attempts!", nil)
	}

	if quiz.MaxAttempts > 0 && attemptNumber > quiz.MaxAttempts {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No attempts remaining for this quiz!", fiber.Map{
			"max_attempts": quiz.MaxAttempts,
		})
	}

	var questions []models.Question
	if err := ctrl.DB.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	score := services.ScoreSubmission(quiz, questions, reqData.Answers)

	answersJSON, _ := json.Marshal(reqData.Answers)
	result := models.ExamResult{
		UserID:        userID,
		QuizID:        quiz.ID,
		Score:         score.Score,
		EarnedPoints:  score.EarnedPoints,
		TotalPoints:   score.TotalPoints,
		IsPassed:      score.IsPassed,
		Answers:       datatypes.JSON(answersJSON),
		AttemptNumber: attemptNumber,
	}

	if err := ctrl.DB.Create(&result).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz result!", nil)
	}

	// A passing attempt also completes the linked lesson, best-effort
	if score.IsPassed && quiz.LessonID > 0 {
		ctrl.completeQuizLesson(enrollment, quiz.LessonID, userID)
	}

	ctrl.Notifier.LogActivity(userID, "QUIZ_SUBMITTED", "quiz", quiz.ID, map[string]interface{}{
		"score":   score.Score,
		"passed":  score.IsPassed,
		"attempt": attemptNumber,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"result":         result,
		"score":          score.Score,
		"earned_points":  score.EarnedPoints,
		"total_points":   score.TotalPoints,
		"is_passed":      score.IsPassed,
		"attempt_number": attemptNumber,
	})
}

// completeQuizLesson marks the quiz's lesson complete after a pass and
// recomputes progress. Failures here don't fail the submission. The
// sequential lock applies here just like on the direct completion path:
// passing a later quiz out of order must not complete a locked lesson.
func (ctrl *CourseController) completeQuizLesson(enrollment models.Enrollment, lessonID, userID uint) {
	var lesson models.Lesson
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return
	}

	ordered, err := services.OrderedCourseLessons(ctrl.DB, course.ID)
	if err != nil {
		return
	}

	var records []models.LessonProgress
	if err := ctrl.DB.Where("enrollment_id = ?", enrollment.ID).Find(&records).Error; err != nil {
		return
	}

	if services.IsLessonLocked(course, lesson, ordered, services.CompletedLessonSet(records)) {
		return
	}

	var progress models.LessonProgress
	err = ctrl.DB.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).First(&progress).Error
	if err != nil {
		progress = models.LessonProgress{EnrollmentID: enrollment.ID, LessonID: lesson.ID}
	}

	if progress.IsCompleted {
		return
	}

	now := time.Now()
	progress.IsCompleted = true
	progress.CompletedAt = &now

	if err := ctrl.DB.Save(&progress).Error; err != nil {
		return
	}

	if percent, err := services.RecomputeProgress(ctrl.DB, enrollment.ID); err == nil && percent >= 100 {
		ctrl.Notifier.Notify(userID, models.NotifyCourseCompleted, "Course completed",
			"Congratulations! You completed "+course.Title, map[string]interface{}{"course_id": course.ID})
	}
}
