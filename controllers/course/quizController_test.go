package courseController

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSequentialQuizCourse(t *testing.T, ctrl *CourseController) (models.Enrollment, models.Lesson, models.Lesson) {
	t.Helper()

	course := models.Course{
		Title:                       "Sequential course",
		Slug:                        "sequential-course",
		Type:                        models.CourseTypeFree,
		IsPublished:                 true,
		RequireSequentialCompletion: true,
	}
	require.NoError(t, ctrl.DB.Create(&course).Error)

	section := models.Section{CourseID: course.ID, Title: "Part 1", OrderIndex: 1}
	require.NoError(t, ctrl.DB.Create(&section).Error)

	first := models.Lesson{
		CourseID: course.ID, SectionID: section.ID,
		Title: "Reading", Type: models.LessonTypeMaterial,
		OrderIndex: 1, IsRequired: true,
	}
	require.NoError(t, ctrl.DB.Create(&first).Error)

	second := models.Lesson{
		CourseID: course.ID, SectionID: section.ID,
		Title: "Checkpoint quiz", Type: models.LessonTypeQuiz,
		OrderIndex: 2, IsRequired: true,
	}
	require.NoError(t, ctrl.DB.Create(&second).Error)

	enrollment := models.Enrollment{
		UserID: 9, CourseID: course.ID, Status: models.EnrollmentActive,
	}
	require.NoError(t, ctrl.DB.Create(&enrollment).Error)

	return enrollment, first, second
}

func TestCompleteQuizLesson_LockedLessonStaysIncomplete(t *testing.T) {
	ctrl := newTestController(t)
	enrollment, _, quizLesson := seedSequentialQuizCourse(t, ctrl)

	// Passing the later quiz out of order must not complete its lesson
	ctrl.completeQuizLesson(enrollment, quizLesson.ID, enrollment.UserID)

	var count int64
	ctrl.DB.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ? AND is_completed = ?", enrollment.ID, quizLesson.ID, true).
		Count(&count)
	assert.Equal(t, int64(0), count)

	var reloaded models.Enrollment
	require.NoError(t, ctrl.DB.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, 0, reloaded.Progress)
}

func TestCompleteQuizLesson_UnlockedLessonCompletes(t *testing.T) {
	ctrl := newTestController(t)
	enrollment, firstLesson, quizLesson := seedSequentialQuizCourse(t, ctrl)

	now := time.Now()
	require.NoError(t, ctrl.DB.Create(&models.LessonProgress{
		EnrollmentID: enrollment.ID,
		LessonID:     firstLesson.ID,
		IsCompleted:  true,
		CompletedAt:  &now,
	}).Error)

	ctrl.completeQuizLesson(enrollment, quizLesson.ID, enrollment.UserID)

	var progress models.LessonProgress
	require.NoError(t, ctrl.DB.
		Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, quizLesson.ID).
		First(&progress).Error)
	assert.True(t, progress.IsCompleted)

	var reloaded models.Enrollment
	require.NoError(t, ctrl.DB.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, 100, reloaded.Progress)
	assert.Equal(t, models.EnrollmentCompleted, reloaded.Status)
}
