package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqCourse(sequential bool) models.Course {
	c := models.Course{RequireSequentialCompletion: sequential}
	c.ID = 1
	return c
}

func lessonAt(id uint, free bool) models.Lesson {
	l := models.Lesson{IsFree: free}
	l.ID = id
	return l
}

func TestIsLessonLocked_NonSequentialCourse(t *testing.T) {
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, false)}

	locked := IsLessonLocked(seqCourse(false), ordered[1], ordered, map[uint]bool{})
	assert.False(t, locked, "nothing is locked when sequential completion is off")
}

func TestIsLessonLocked_FirstLessonNeverLocked(t *testing.T) {
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, false)}

	locked := IsLessonLocked(seqCourse(true), ordered[0], ordered, map[uint]bool{})
	assert.False(t, locked)
}

func TestIsLessonLocked_FreeLessonNeverLocked(t *testing.T) {
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, true), lessonAt(3, false)}

	locked := IsLessonLocked(seqCourse(true), ordered[1], ordered, map[uint]bool{})
	assert.False(t, locked, "free lessons bypass the lock entirely")
}

func TestIsLessonLocked_LockedUntilEarlierCompleted(t *testing.T) {
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, false), lessonAt(3, false)}
	course := seqCourse(true)

	assert.True(t, IsLessonLocked(course, ordered[1], ordered, map[uint]bool{}))
	assert.True(t, IsLessonLocked(course, ordered[2], ordered, map[uint]bool{1: true}))

	// Completing lesson 1 unlocks lesson 2 but not lesson 3
	completed := map[uint]bool{1: true}
	assert.False(t, IsLessonLocked(course, ordered[1], ordered, completed))
	assert.True(t, IsLessonLocked(course, ordered[2], ordered, completed))

	completed[2] = true
	assert.False(t, IsLessonLocked(course, ordered[2], ordered, completed))
}

func TestIsLessonLocked_FreeLessonsSkippedInPrefix(t *testing.T) {
	// An uncompleted free lesson earlier in the order must not block
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, true), lessonAt(3, false)}
	completed := map[uint]bool{1: true}

	assert.False(t, IsLessonLocked(seqCourse(true), ordered[2], ordered, completed))
}

func TestIsLessonLocked_RecomputedFromProgress(t *testing.T) {
	// Un-completing an earlier lesson re-locks the later one
	ordered := []models.Lesson{lessonAt(1, false), lessonAt(2, false)}
	course := seqCourse(true)

	progress := []models.LessonProgress{{LessonID: 1, IsCompleted: true}}
	assert.False(t, IsLessonLocked(course, ordered[1], ordered, CompletedLessonSet(progress)))

	progress[0].IsCompleted = false
	assert.True(t, IsLessonLocked(course, ordered[1], ordered, CompletedLessonSet(progress)))
}

func TestOrderedCourseLessons(t *testing.T) {
	db := newTestDB(t)

	course := models.Course{Title: "Go Basics", Slug: "go-basics", InstructorID: 1}
	require.NoError(t, db.Create(&course).Error)

	s1 := models.Section{CourseID: course.ID, Title: "Intro", OrderIndex: 1}
	s2 := models.Section{CourseID: course.ID, Title: "Advanced", OrderIndex: 2}
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)

	// Inserted out of order on purpose
	l3 := models.Lesson{CourseID: course.ID, SectionID: s2.ID, Title: "Goroutines", OrderIndex: 1}
	l1 := models.Lesson{CourseID: course.ID, SectionID: s1.ID, Title: "Setup", OrderIndex: 1}
	l2 := models.Lesson{CourseID: course.ID, SectionID: s1.ID, Title: "Syntax", OrderIndex: 2}
	require.NoError(t, db.Create(&l3).Error)
	require.NoError(t, db.Create(&l1).Error)
	require.NoError(t, db.Create(&l2).Error)

	ordered, err := OrderedCourseLessons(db, course.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	assert.Equal(t, "Setup", ordered[0].Title)
	assert.Equal(t, "Syntax", ordered[1].Title)
	assert.Equal(t, "Goroutines", ordered[2].Title)
}
