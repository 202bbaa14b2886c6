package services

import (
	"math"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// RecomputeProgress recalculates an enrollment's percent-complete over the
// course's required lessons and persists the result. Runs synchronously
// after every completion event; certificate eligibility reads the status
// this writes, so no eventual-consistency window is tolerated.
func RecomputeProgress(db *gorm.DB, enrollmentID uint) (int, error) {
	var enrollment models.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return 0, err
	}

	var totalRequired int64
	if err := db.Model(&models.Lesson{}).
		Where("course_id = ? AND is_required = ? AND is_deleted = ?", enrollment.CourseID, true, false).
		Count(&totalRequired).Error; err != nil {
		return 0, err
	}

	var completedRequired int64
	if err := db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.enrollment_id = ? AND lesson_progresses.is_completed = ?", enrollmentID, true).
		Where("lessons.is_required = ? AND lessons.is_deleted = ?", true, false).
		Count(&completedRequired).Error; err != nil {
		return 0, err
	}

	percent := 0
	if totalRequired > 0 {
		percent = int(math.Round(float64(completedRequired) / float64(totalRequired) * 100))
	}

	enrollment.Progress = percent
	if percent >= 100 && totalRequired > 0 {
		if enrollment.Status != models.EnrollmentCompleted {
			now := time.Now()
			enrollment.Status = models.EnrollmentCompleted
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Status == models.EnrollmentCompleted {
		// Progress fell back below 100, revert
		enrollment.Status = models.EnrollmentActive
		enrollment.CompletedAt = nil
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return 0, err
	}

	return percent, nil
}
