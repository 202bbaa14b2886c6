package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

// Enrollment tracks a user's registration in a course with progress.
// At most one enrollment exists per (user, course) pair.
type Enrollment struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID      uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status        string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, DROPPED
	Progress      int        `json:"progress" gorm:"default:0"`      // Completion percentage (0-100)
	CourseVersion string     `json:"course_version"`                 // pinned at enrollment time
	CompletedAt   *time.Time `json:"completed_at"`
	IsDeleted     bool       `gorm:"default:false"`
}

// LessonProgress is the per-(enrollment, lesson) completion record,
// created lazily on first interaction with a lesson.
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`
	WatchTime    int        `json:"watch_time" gorm:"default:0"` // seconds watched, for VIDEO
}
