package services

import (
	"lms/models"

	"gorm.io/gorm"
)

// OrderedCourseLessons returns a course's lessons in course-wide order:
// section order first, lesson order within the section second.
func OrderedCourseLessons(db *gorm.DB, courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := db.Model(&models.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.course_id = ? AND lessons.is_deleted = ? AND sections.is_deleted = ?", courseID, false, false).
		Order("sections.order_index asc, lessons.order_index asc, lessons.id asc").
		Find(&lessons).Error
	return lessons, err
}

// CompletedLessonSet builds a lookup of completed lesson IDs for an enrollment
func CompletedLessonSet(progress []models.LessonProgress) map[uint]bool {
	completed := make(map[uint]bool, len(progress))
	for _, p := range progress {
		if p.IsCompleted {
			completed[p.LessonID] = true
		}
	}
	return completed
}

// IsLessonLocked decides whether a lesson is accessible to a learner.
// Evaluated fresh on every fetch; nothing about lock state is persisted,
// so un-completing an earlier lesson immediately re-locks later ones.
func IsLessonLocked(course models.Course, lesson models.Lesson, ordered []models.Lesson, completed map[uint]bool) bool {
	if !course.RequireSequentialCompletion {
		return false
	}
	if lesson.IsFree {
		return false
	}

	for _, prior := range ordered {
		if prior.ID == lesson.ID {
			// First lesson in course-wide order, or all earlier
			// non-free lessons completed.
			return false
		}
		if prior.IsFree {
			continue
		}
		if !completed[prior.ID] {
			return true
		}
	}

	// Lesson not part of the ordered list; treat as accessible
	return false
}
