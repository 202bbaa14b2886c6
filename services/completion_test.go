package services

import (
	"fmt"
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func videoLesson(duration, minWatch int) models.Lesson {
	content := `{}`
	if minWatch > 0 {
		content = fmt.Sprintf(`{"min_watch_percentage": %d}`, minWatch)
	}
	return models.Lesson{
		Type:     models.LessonTypeVideo,
		Duration: duration,
		Content:  datatypes.JSON([]byte(content)),
	}
}

func TestValidateCompletion_VideoBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	lesson := videoLesson(100, 80)

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{WatchTime: 60})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, 60, result.Details["watched_percentage"])
	assert.Equal(t, 80, result.Details["required_percentage"])
}

func TestValidateCompletion_VideoExactThresholdPasses(t *testing.T) {
	db := newTestDB(t)
	lesson := videoLesson(100, 80)

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{WatchTime: 80})
	require.NoError(t, err)
	assert.True(t, result.Allowed, "exactly the threshold must pass")
}

func TestValidateCompletion_VideoDefaultThreshold(t *testing.T) {
	db := newTestDB(t)
	lesson := videoLesson(200, 0) // no threshold in content, default 80

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{WatchTime: 158})
	require.NoError(t, err)
	assert.False(t, result.Allowed, "79% rounds below the default threshold")

	result, err = ValidateCompletion(db, lesson, 1, CompletionPayload{WatchTime: 170})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestValidateCompletion_MaterialAlwaysAllowed(t *testing.T) {
	db := newTestDB(t)

	for _, lt := range []string{models.LessonTypeMaterial, models.LessonTypeLiveSession, models.LessonTypeDiscussion} {
		result, err := ValidateCompletion(db, models.Lesson{Type: lt}, 1, CompletionPayload{})
		require.NoError(t, err)
		assert.True(t, result.Allowed, "type %s should be trivially allowed", lt)
	}
}

func TestValidateCompletion_AssignmentRequiresSubmission(t *testing.T) {
	db := newTestDB(t)
	lesson := models.Lesson{
		Type:    models.LessonTypeAssignment,
		Content: datatypes.JSON([]byte(`{"submission_type": "TEXT"}`)),
	}

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{})
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = ValidateCompletion(db, lesson, 1, CompletionPayload{Submission: "my essay", SubmissionType: "TEXT"})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestValidateCompletion_AssignmentTypeMismatch(t *testing.T) {
	db := newTestDB(t)
	lesson := models.Lesson{
		Type:    models.LessonTypeAssignment,
		Content: datatypes.JSON([]byte(`{"submission_type": "FILE"}`)),
	}

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{Submission: "some text", SubmissionType: "TEXT"})
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, "FILE", result.Details["required_type"])
}

func TestValidateCompletion_AssignmentAnyTypeAcceptsAll(t *testing.T) {
	db := newTestDB(t)
	lesson := models.Lesson{
		Type:    models.LessonTypeAssignment,
		Content: datatypes.JSON([]byte(`{"submission_type": "ANY"}`)),
	}

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{Submission: "https://repo.example.com", SubmissionType: "LINK"})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestValidateCompletion_AssignmentDeadlinePassed(t *testing.T) {
	db := newTestDB(t)
	past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	lesson := models.Lesson{
		Type:    models.LessonTypeAssignment,
		Content: datatypes.JSON([]byte(`{"submission_type": "TEXT", "deadline": "` + past + `"}`)),
	}

	result, err := ValidateCompletion(db, lesson, 1, CompletionPayload{Submission: "late work", SubmissionType: "TEXT"})
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestValidateCompletion_QuizRequiresPassingAttempt(t *testing.T) {
	db := newTestDB(t)

	quiz := models.Quiz{CourseID: 1, Title: "Checkpoint", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)

	lesson := models.Lesson{
		Type:    models.LessonTypeQuiz,
		Content: datatypes.JSON([]byte(fmt.Sprintf(`{"quiz_id": %d}`, quiz.ID))),
	}

	// No attempt yet
	result, err := ValidateCompletion(db, lesson, 7, CompletionPayload{})
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// Failed attempt
	failed := models.ExamResult{UserID: 7, QuizID: quiz.ID, Score: 50, IsPassed: false, AttemptNumber: 1}
	require.NoError(t, db.Create(&failed).Error)

	result, err = ValidateCompletion(db, lesson, 7, CompletionPayload{})
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 70, result.Details["passing_score"])
	assert.Equal(t, 50, result.Details["your_score"])

	// Passing attempt, most recent wins
	passed := models.ExamResult{UserID: 7, QuizID: quiz.ID, Score: 80, IsPassed: true, AttemptNumber: 2}
	require.NoError(t, db.Create(&passed).Error)

	result, err = ValidateCompletion(db, lesson, 7, CompletionPayload{})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
