package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id uint, qType, correct string, points int) models.Question {
	q := models.Question{Type: qType, CorrectAnswer: correct, Points: points}
	q.ID = id
	return q
}

func TestScoreSubmission_AllCorrect(t *testing.T) {
	quiz := models.Quiz{PassingScore: 70}
	questions := []models.Question{
		question(1, models.QuestionMultipleChoice, "B", 1),
		question(2, models.QuestionTrueFalse, "true", 1),
	}

	result := ScoreSubmission(quiz, questions, map[string]string{"1": "B", "2": "true"})

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 2, result.EarnedPoints)
	assert.Equal(t, 2, result.TotalPoints)
	assert.True(t, result.IsPassed)
}

func TestScoreSubmission_ExactPassingScorePasses(t *testing.T) {
	quiz := models.Quiz{PassingScore: 50}
	questions := []models.Question{
		question(1, models.QuestionMultipleChoice, "A", 1),
		question(2, models.QuestionMultipleChoice, "B", 1),
	}

	result := ScoreSubmission(quiz, questions, map[string]string{"1": "A", "2": "C"})

	assert.Equal(t, 50, result.Score)
	assert.True(t, result.IsPassed)
}

func TestScoreSubmission_ShortAnswerCaseInsensitive(t *testing.T) {
	quiz := models.Quiz{PassingScore: 100}
	questions := []models.Question{
		question(1, models.QuestionShortAnswer, "Goroutine", 2),
	}

	result := ScoreSubmission(quiz, questions, map[string]string{"1": "  goroutine "})

	assert.Equal(t, 100, result.Score)
	assert.True(t, result.IsPassed)
}

func TestScoreSubmission_MultipleChoiceExactMatch(t *testing.T) {
	quiz := models.Quiz{PassingScore: 100}
	questions := []models.Question{
		question(1, models.QuestionMultipleChoice, "B", 1),
	}

	// MC answers are compared verbatim, no trimming or case folding
	result := ScoreSubmission(quiz, questions, map[string]string{"1": "b"})
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.IsPassed)
}

func TestScoreSubmission_WeightedPoints(t *testing.T) {
	quiz := models.Quiz{PassingScore: 70}
	questions := []models.Question{
		question(1, models.QuestionMultipleChoice, "A", 3),
		question(2, models.QuestionMultipleChoice, "B", 1),
	}

	result := ScoreSubmission(quiz, questions, map[string]string{"1": "A"})

	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 3, result.EarnedPoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.True(t, result.IsPassed)
}

func TestScoreSubmission_Idempotent(t *testing.T) {
	quiz := models.Quiz{PassingScore: 70}
	questions := []models.Question{
		question(1, models.QuestionMultipleChoice, "A", 1),
		question(2, models.QuestionShortAnswer, "channel", 1),
	}
	answers := map[string]string{"1": "A", "2": "Channel"}

	first := ScoreSubmission(quiz, questions, answers)
	second := ScoreSubmission(quiz, questions, answers)

	assert.Equal(t, first, second, "same answers and question set must always score the same")
}

func TestScoreSubmission_EmptyQuiz(t *testing.T) {
	quiz := models.Quiz{PassingScore: 70}

	result := ScoreSubmission(quiz, nil, map[string]string{})

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.IsPassed)
}

func TestNextAttemptNumber(t *testing.T) {
	db := newTestDB(t)

	quiz := models.Quiz{CourseID: 1, Title: "Final", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)

	n, err := NextAttemptNumber(db, 5, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for i := 1; i <= 2; i++ {
		result := models.ExamResult{UserID: 5, QuizID: quiz.ID, AttemptNumber: i}
		require.NoError(t, db.Create(&result).Error)
	}

	n, err = NextAttemptNumber(db, 5, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Other users don't share the sequence
	n, err = NextAttemptNumber(db, 6, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
