package services

import (
	"fmt"
	"math"
	"strings"

	"lms/models"

	"gorm.io/gorm"
)

// QuizScore is the outcome of scoring one submission
type QuizScore struct {
	Score        int  `json:"score"` // percentage
	EarnedPoints int  `json:"earned_points"`
	TotalPoints  int  `json:"total_points"`
	IsPassed     bool `json:"is_passed"`
}

// ScoreSubmission scores a set of answers against a quiz's questions.
// Answers are keyed by question ID. MULTIPLE_CHOICE and TRUE_FALSE compare
// stringified answers exactly; SHORT_ANSWER compares case-insensitively
// after trimming. Scoring is pure, so replaying the same submission
// against the same question set always yields the same result.
func ScoreSubmission(quiz models.Quiz, questions []models.Question, answers map[string]string) QuizScore {
	earned := 0
	total := 0

	for _, q := range questions {
		total += q.Points

		answer, ok := answers[fmt.Sprintf("%d", q.ID)]
		if !ok {
			continue
		}

		switch q.Type {
		case models.QuestionShortAnswer:
			if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)) {
				earned += q.Points
			}
		default: // MULTIPLE_CHOICE, TRUE_FALSE
			if answer == q.CorrectAnswer {
				earned += q.Points
			}
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(earned) / float64(total) * 100))
	}

	return QuizScore{
		Score:        score,
		EarnedPoints: earned,
		TotalPoints:  total,
		IsPassed:     score >= quiz.PassingScore,
	}
}

// NextAttemptNumber returns the sequential attempt number for a new
// submission by this user on this quiz.
func NextAttemptNumber(db *gorm.DB, userID, quizID uint) (int, error) {
	var count int64
	err := db.Model(&models.ExamResult{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}
