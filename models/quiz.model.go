package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTrueFalse      = "TRUE_FALSE"
	QuestionShortAnswer    = "SHORT_ANSWER"
)

// Quiz represents a scored set of questions linked to a lesson
type Quiz struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	LessonID     uint   `json:"lesson_id" gorm:"index"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // percentage
	MaxAttempts  int    `json:"max_attempts" gorm:"default:0"`   // 0 = unlimited
	IsDeleted    bool   `gorm:"default:false"`
}

// Question represents one question within a quiz
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Type          string         `json:"type" gorm:"default:'MULTIPLE_CHOICE'"`
	Prompt        string         `json:"prompt"`
	Options       datatypes.JSON `json:"options"` // array of option strings, for MULTIPLE_CHOICE
	CorrectAnswer string         `json:"-"`
	Points        int            `json:"points" gorm:"default:1"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

// ExamResult is the immutable record of one quiz attempt.
// Attempts are numbered sequentially per (user, quiz).
type ExamResult struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Score         int            `json:"score"` // percentage
	EarnedPoints  int            `json:"earned_points"`
	TotalPoints   int            `json:"total_points"`
	IsPassed      bool           `json:"is_passed" gorm:"default:false"`
	Answers       datatypes.JSON `json:"answers"` // question id -> submitted answer
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
}
