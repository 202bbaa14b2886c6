package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// DefaultMinWatchPercentage applies to VIDEO lessons whose content
// does not declare its own threshold.
const DefaultMinWatchPercentage = 80

// CompletionPayload is the learner-supplied evidence for completing a lesson
type CompletionPayload struct {
	WatchTime      int    `json:"watch_time"` // seconds, VIDEO
	Submission     string `json:"submission"` // ASSIGNMENT
	SubmissionType string `json:"submission_type"`
}

// CompletionResult is the structured verdict of the completion evaluator.
// Rejections carry a human-readable reason, never a generic error.
type CompletionResult struct {
	Allowed bool                   `json:"allowed"`
	Reason  string                 `json:"reason,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func rejected(reason string, details map[string]interface{}) CompletionResult {
	return CompletionResult{Allowed: false, Reason: reason, Details: details}
}

// ValidateCompletion decides whether a lesson may be marked complete for a
// user given the submitted payload. This is the single authority gating
// LessonProgress writes; a bare "mark complete" request cannot bypass it.
func ValidateCompletion(db *gorm.DB, lesson models.Lesson, userID uint, payload CompletionPayload) (CompletionResult, error) {
	switch lesson.Type {
	case models.LessonTypeVideo:
		return validateVideo(lesson, payload), nil

	case models.LessonTypeMaterial, models.LessonTypeLiveSession, models.LessonTypeDiscussion:
		// No payload constraint until richer tracking exists
		return CompletionResult{Allowed: true}, nil

	case models.LessonTypeAssignment:
		return validateAssignment(lesson, payload), nil

	case models.LessonTypeQuiz, models.LessonTypeExam:
		return validateQuizLesson(db, lesson, userID)

	default:
		return rejected(fmt.Sprintf("Unknown lesson type: %s", lesson.Type), nil), nil
	}
}

func validateVideo(lesson models.Lesson, payload CompletionPayload) CompletionResult {
	var content models.VideoContent
	if len(lesson.Content) > 0 {
		if err := json.Unmarshal(lesson.Content, &content); err != nil {
			return rejected("Invalid video lesson content!", nil)
		}
	}

	minWatch := content.MinWatchPercentage
	if minWatch <= 0 {
		minWatch = DefaultMinWatchPercentage
	}

	// A video without a known duration cannot be measured
	if lesson.Duration <= 0 {
		return CompletionResult{Allowed: true}
	}

	watched := int(math.Round(float64(payload.WatchTime) / float64(lesson.Duration) * 100))
	if watched >= minWatch {
		return CompletionResult{Allowed: true}
	}

	return rejected(
		fmt.Sprintf("Watch at least %d%% of the video to complete this lesson.", minWatch),
		map[string]interface{}{
			"watched_percentage":  watched,
			"required_percentage": minWatch,
		},
	)
}

func validateAssignment(lesson models.Lesson, payload CompletionPayload) CompletionResult {
	var content models.AssignmentContent
	if len(lesson.Content) > 0 {
		if err := json.Unmarshal(lesson.Content, &content); err != nil {
			return rejected("Invalid assignment lesson content!", nil)
		}
	}

	if content.Deadline != nil && time.Now().After(*content.Deadline) {
		return rejected("The assignment deadline has passed.", map[string]interface{}{
			"deadline": content.Deadline,
		})
	}

	if payload.Submission == "" {
		return rejected("A submission is required to complete this assignment.", nil)
	}

	declared := content.SubmissionType
	if declared != "" && declared != models.SubmissionTypeAny && payload.SubmissionType != declared {
		return rejected(
			fmt.Sprintf("This assignment requires a %s submission.", declared),
			map[string]interface{}{"required_type": declared},
		)
	}

	return CompletionResult{Allowed: true}
}

func validateQuizLesson(db *gorm.DB, lesson models.Lesson, userID uint) (CompletionResult, error) {
	var content models.QuizContent
	if len(lesson.Content) > 0 {
		if err := json.Unmarshal(lesson.Content, &content); err != nil {
			return rejected("Invalid quiz lesson content!", nil), nil
		}
	}
	if content.QuizID == 0 {
		return rejected("No quiz is linked to this lesson.", nil), nil
	}

	var quiz models.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", content.QuizID, false).First(&quiz).Error; err != nil {
		return rejected("No quiz is linked to this lesson.", nil), nil
	}

	// Most recent attempt decides
	var result models.ExamResult
	err := db.Where("user_id = ? AND quiz_id = ?", userID, content.QuizID).
		Order("attempt_number desc").First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return rejected("Take the quiz before completing this lesson.", map[string]interface{}{
				"quiz_id":       quiz.ID,
				"passing_score": quiz.PassingScore,
			}), nil
		}
		return CompletionResult{}, err
	}

	if !result.IsPassed {
		return rejected("Pass the quiz to complete this lesson.", map[string]interface{}{
			"quiz_id":       quiz.ID,
			"passing_score": quiz.PassingScore,
			"your_score":    result.Score,
		}), nil
	}

	return CompletionResult{Allowed: true}, nil
}
