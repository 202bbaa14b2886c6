package adminController

import (
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminController serves the admin dashboard and assessor assignment
type AdminController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
}

func New(db *gorm.DB, notifier *utils.Notifier) *AdminController {
	return &AdminController{DB: db, Notifier: notifier}
}

// Dashboard aggregates platform-wide counts, revenue and recent activity
func (ctrl *AdminController) Dashboard(c *fiber.Ctx) error {
	var totalUsers, totalCourses, publishedCourses int64
	var totalEnrollments, completedEnrollments int64
	var pendingCertificates int64

	ctrl.DB.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	ctrl.DB.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	ctrl.DB.Model(&models.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)
	ctrl.DB.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	ctrl.DB.Model(&models.Enrollment{}).Where("status = ? AND is_deleted = ?", models.EnrollmentCompleted, false).Count(&completedEnrollments)
	ctrl.DB.Model(&models.Certificate{}).Where("status = ?", models.CertificatePending).Count(&pendingCertificates)

	var revenue struct {
		Total float64
	}
	ctrl.DB.Model(&models.PaymentIntent{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status = ? AND is_deleted = ?", models.PaymentCompleted, false).
		Scan(&revenue)

	var recentEnrollments []models.Enrollment
	ctrl.DB.Where("is_deleted = ?", false).Order("created_at desc").Limit(10).Find(&recentEnrollments)

	var recentActivity []models.ActivityLog
	ctrl.DB.Order("created_at desc").Limit(20).Find(&recentActivity)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total": totalUsers,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
		},
		"enrollments": fiber.Map{
			"total":     totalEnrollments,
			"completed": completedEnrollments,
		},
		"certificates": fiber.Map{
			"pending_review": pendingCertificates,
		},
		"revenue": fiber.Map{
			"total": revenue.Total,
		},
		"recent_enrollments": recentEnrollments,
		"recent_activity":    recentActivity,
	})
}

// AssignAssessors replaces a course's assessor set in one transaction.
// Every user must exist and hold the ASSESSOR role or nothing changes.
func (ctrl *AdminController) AssignAssessors(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssessors").(*struct {
		CourseID uint   `json:"course_id"`
		UserIDs  []uint `json:"user_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var assessors []models.User
	if err := ctrl.DB.Where("id IN ? AND role = ? AND is_deleted = ?", reqData.UserIDs, models.RoleAssessor, false).Find(&assessors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify assessors!", nil)
	}
	if len(assessors) != len(reqData.UserIDs) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "All users must exist and have the ASSESSOR role!", nil)
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete: a soft-deleted row would still occupy the unique index
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.CourseAssessor{}).Error; err != nil {
			return err
		}
		for _, uid := range reqData.UserIDs {
			assignment := models.CourseAssessor{CourseID: course.ID, UserID: uid}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign assessors!", nil)
	}

	for _, assessor := range assessors {
		ctrl.Notifier.Notify(assessor.ID, models.NotifyAssessorAssigned, "Assessor assignment",
			"You were assigned to assess "+course.Title, map[string]interface{}{"course_id": course.ID})
	}
	ctrl.Notifier.LogActivity(adminID, "ASSESSORS_ASSIGNED", "course", course.ID, map[string]interface{}{
		"assessor_count": len(reqData.UserIDs),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessors assigned successfully!", fiber.Map{
		"course_id": course.ID,
		"assessors": reqData.UserIDs,
	})
}

// GetAssessors lists a course's current assessor assignments
func (ctrl *AdminController) GetAssessors(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var assignments []models.CourseAssessor
	if err := ctrl.DB.Where("course_id = ?", course.ID).Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessors!", nil)
	}

	type AssessorView struct {
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}

	result := make([]AssessorView, 0, len(assignments))
	for _, assignment := range assignments {
		var user models.User
		if err := ctrl.DB.Where("id = ?", assignment.UserID).First(&user).Error; err == nil {
			result = append(result, AssessorView{UserID: user.ID, Name: user.Name, Email: user.Email})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessors fetched successfully!", fiber.Map{
		"course_id": course.ID,
		"assessors": result,
	})
}
