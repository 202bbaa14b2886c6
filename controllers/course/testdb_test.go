package courseController

import (
	"fmt"
	"testing"

	"lms/models"
	"lms/realtime"
	"lms/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestController opens an isolated in-memory sqlite database and a
// controller wired to it.
func newTestController(t *testing.T) *CourseController {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Section{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
		&models.Quiz{},
		&models.Question{},
		&models.ExamResult{},
		&models.Certificate{},
		&models.Notification{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return New(db, utils.NewNotifier(db, realtime.NewHub()))
}
