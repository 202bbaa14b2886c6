package services

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type progressFixture struct {
	course     models.Course
	enrollment models.Enrollment
	lessons    []models.Lesson
}

// seedProgressCourse creates a course with the given lessons (true =
// required) and an active enrollment for user 1.
func seedProgressCourse(t *testing.T, db *gorm.DB, required ...bool) progressFixture {
	t.Helper()

	course := models.Course{Title: "Testing in Go", Slug: "testing-in-go", InstructorID: 2}
	require.NoError(t, db.Create(&course).Error)

	section := models.Section{CourseID: course.ID, Title: "Main", OrderIndex: 1}
	require.NoError(t, db.Create(&section).Error)

	lessons := make([]models.Lesson, len(required))
	for i, req := range required {
		lessons[i] = models.Lesson{
			CourseID:   course.ID,
			SectionID:  section.ID,
			Title:      "Lesson",
			Type:       models.LessonTypeMaterial,
			OrderIndex: i + 1,
			IsRequired: req,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
		// Force is_required through even when false: the column has a
		// DB default of true and gorm omits zero-value fields on Create.
		require.NoError(t, db.Model(&lessons[i]).Update("is_required", req).Error)
	}

	enrollment := models.Enrollment{UserID: 1, CourseID: course.ID, Status: models.EnrollmentActive}
	require.NoError(t, db.Create(&enrollment).Error)

	return progressFixture{course: course, enrollment: enrollment, lessons: lessons}
}

func completeLesson(t *testing.T, db *gorm.DB, enrollmentID, lessonID uint) {
	t.Helper()
	now := time.Now()
	progress := models.LessonProgress{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		IsCompleted:  true,
		CompletedAt:  &now,
	}
	require.NoError(t, db.Create(&progress).Error)
}

func TestRecomputeProgress_HalfThenComplete(t *testing.T) {
	db := newTestDB(t)
	fx := seedProgressCourse(t, db, true, true)

	completeLesson(t, db, fx.enrollment.ID, fx.lessons[0].ID)

	percent, err := RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, percent)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, fx.enrollment.ID).Error)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)

	completeLesson(t, db, fx.enrollment.ID, fx.lessons[1].ID)

	percent, err = RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)

	require.NoError(t, db.First(&enrollment, fx.enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestRecomputeProgress_OptionalLessonsIgnored(t *testing.T) {
	db := newTestDB(t)
	fx := seedProgressCourse(t, db, true, false) // second lesson optional

	completeLesson(t, db, fx.enrollment.ID, fx.lessons[0].ID)

	percent, err := RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent, "only required lessons count toward progress")
}

func TestRecomputeProgress_NoRequiredLessons(t *testing.T) {
	db := newTestDB(t)
	fx := seedProgressCourse(t, db, false, false)

	percent, err := RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, fx.enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status, "an empty course never reads as completed")
}

func TestRecomputeProgress_RevertsWhenBelowFull(t *testing.T) {
	db := newTestDB(t)
	fx := seedProgressCourse(t, db, true)

	completeLesson(t, db, fx.enrollment.ID, fx.lessons[0].ID)
	_, err := RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, fx.enrollment.ID).Error)
	require.Equal(t, models.EnrollmentCompleted, enrollment.Status)

	// Un-complete the lesson; status must fall back to ACTIVE
	require.NoError(t, db.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", fx.enrollment.ID, fx.lessons[0].ID).
		Update("is_completed", false).Error)

	percent, err := RecomputeProgress(db, fx.enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)

	// Fetch into a fresh struct: gorm leaves a previously set pointer
	// field untouched when scanning a NULL column into a reused value.
	var reverted models.Enrollment
	require.NoError(t, db.First(&reverted, fx.enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentActive, reverted.Status)
	assert.Nil(t, reverted.CompletedAt)
}
