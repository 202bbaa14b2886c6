package paymentController

import (
	"fmt"
	"testing"

	"lms/models"
	"lms/realtime"
	"lms/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestController(t *testing.T) *PaymentController {
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
		&models.Enrollment{},
		&models.PaymentIntent{},
		&models.Notification{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return New(db, utils.NewNotifier(db, realtime.NewHub()))
}

func seedPaidCourseIntent(t *testing.T, ctrl *PaymentController) models.PaymentIntent {
	t.Helper()

	course := models.Course{
		Title:       "Paid course",
		Slug:        "paid-course",
		Type:        models.CourseTypePaid,
		Price:       49.0,
		Version:     "2.0",
		IsPublished: true,
	}
	require.NoError(t, ctrl.DB.Create(&course).Error)

	intent := models.PaymentIntent{
		UserID:    7,
		CourseID:  course.ID,
		Amount:    course.Price,
		Currency:  "USD",
		Status:    models.PaymentPending,
		Reference: utils.GeneratePaymentReference(),
	}
	require.NoError(t, ctrl.DB.Create(&intent).Error)

	return intent
}

func TestSettlePayment_CreatesEnrollmentOnce(t *testing.T) {
	ctrl := newTestController(t)
	intent := seedPaidCourseIntent(t, ctrl)

	rawEvent := []byte(`{"event":"payment.captured"}`)
	require.NoError(t, ctrl.settlePayment(&intent, "gw_pay_1", rawEvent))

	var reloaded models.PaymentIntent
	require.NoError(t, ctrl.DB.First(&reloaded, intent.ID).Error)
	assert.Equal(t, models.PaymentCompleted, reloaded.Status)
	assert.Equal(t, "gw_pay_1", reloaded.GatewayPaymentID)
	assert.NotNil(t, reloaded.PaidAt)

	var enrollments []models.Enrollment
	require.NoError(t, ctrl.DB.Where("user_id = ? AND course_id = ?", intent.UserID, intent.CourseID).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	assert.Equal(t, models.EnrollmentActive, enrollments[0].Status)
	assert.Equal(t, "2.0", enrollments[0].CourseVersion)

	// A replayed delivery settling the same intent again stays idempotent
	require.NoError(t, ctrl.settlePayment(&reloaded, "gw_pay_1", rawEvent))

	var count int64
	ctrl.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", intent.UserID, intent.CourseID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSettlePayment_FailureLeavesNothing(t *testing.T) {
	ctrl := newTestController(t)
	intent := seedPaidCourseIntent(t, ctrl)

	// Force the enrollment insert to fail partway through the transaction
	require.NoError(t, ctrl.DB.Migrator().DropTable(&models.Enrollment{}))

	err := ctrl.settlePayment(&intent, "gw_pay_2", []byte(`{}`))
	require.Error(t, err)

	var reloaded models.PaymentIntent
	require.NoError(t, ctrl.DB.First(&reloaded, intent.ID).Error)
	assert.Equal(t, models.PaymentPending, reloaded.Status)
	assert.Nil(t, reloaded.PaidAt)
}
