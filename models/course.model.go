package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CourseTypeFree    = "FREE"
	CourseTypePaid    = "PAID"
	CourseTypePremium = "PREMIUM"
)

const (
	LessonTypeVideo       = "VIDEO"
	LessonTypeMaterial    = "MATERIAL"
	LessonTypeLiveSession = "LIVE_SESSION"
	LessonTypeAssignment  = "ASSIGNMENT"
	LessonTypeQuiz        = "QUIZ"
	LessonTypeExam        = "EXAM"
	LessonTypeDiscussion  = "DISCUSSION"
)

// Course represents a learning course owned by one instructor
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Slug         string  `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Level        string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Type         string  `json:"type" gorm:"default:'FREE'"`      // FREE, PAID, PREMIUM
	Price        float64 `json:"price" gorm:"default:0"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Version      string  `json:"version" gorm:"default:'1.0'"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`

	RequireSequentialCompletion bool `json:"require_sequential_completion" gorm:"default:false"`
	RequireManualApproval       bool `json:"require_manual_approval" gorm:"default:false"`

	IsDeleted bool `gorm:"default:false"`
}

// Section represents an ordered group of lessons within a course
type Section struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Section order in course
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson represents a single unit of content within a section.
// Content carries the type-dependent payload (see the *Content structs).
type Lesson struct {
	gorm.Model
	CourseID   uint           `json:"course_id" gorm:"index;not null"`
	SectionID  uint           `json:"section_id" gorm:"index;not null"`
	Title      string         `json:"title"`
	Type       string         `json:"type" gorm:"default:'MATERIAL'"`
	Content    datatypes.JSON `json:"content"`
	OrderIndex int            `json:"order_index" gorm:"default:0"` // Order within section
	Duration   int            `json:"duration" gorm:"default:0"`    // seconds, for VIDEO
	IsFree     bool           `json:"is_free" gorm:"default:false"`
	IsRequired bool           `json:"is_required" gorm:"default:true"`
	IsDeleted  bool           `gorm:"default:false"`
}

const (
	SubmissionTypeFile = "FILE"
	SubmissionTypeText = "TEXT"
	SubmissionTypeLink = "LINK"
	SubmissionTypeAny  = "ANY"
)

// VideoContent is the Lesson.Content payload for VIDEO lessons
type VideoContent struct {
	VideoURL           string `json:"video_url"`
	MinWatchPercentage int    `json:"min_watch_percentage"` // 0 means default (80)
}

// MaterialContent is the Lesson.Content payload for MATERIAL lessons
type MaterialContent struct {
	FileURL string `json:"file_url"`
	Text    string `json:"text"`
}

// AssignmentContent is the Lesson.Content payload for ASSIGNMENT lessons
type AssignmentContent struct {
	Instructions   string     `json:"instructions"`
	SubmissionType string     `json:"submission_type"` // FILE, TEXT, LINK, ANY
	Deadline       *time.Time `json:"deadline"`
}

// QuizContent is the Lesson.Content payload for QUIZ and EXAM lessons
type QuizContent struct {
	QuizID uint `json:"quiz_id"`
}

// LiveSessionContent is the Lesson.Content payload for LIVE_SESSION lessons
type LiveSessionContent struct {
	MeetingURL string     `json:"meeting_url"`
	StartsAt   *time.Time `json:"starts_at"`
}
