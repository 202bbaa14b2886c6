package courseController

import (
	"time"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate creates the one-and-only certificate record for a
// completed enrollment. A repeat request — including after a rejection —
// is permanently blocked.
func (ctrl *CourseController) RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCertificateRequest").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	if enrollment.Status != models.EnrollmentCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Complete the course before requesting a certificate!", fiber.Map{
			"progress": enrollment.Progress,
		})
	}

	// One certificate row per (user, course), ever
	var existing models.Certificate
	if err := ctrl.DB.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A certificate was already requested for this course. Contact support if you believe this is an error.", fiber.Map{
			"status": existing.Status,
		})
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	certificate := models.Certificate{
		UserID:       userID,
		CourseID:     course.ID,
		EnrollmentID: enrollment.ID,
		Status:       models.CertificatePending,
		RequestedAt:  time.Now(),
	}

	// Courses without manual approval issue immediately
	if !course.RequireManualApproval {
		ctrl.issueCertificate(&certificate)
	}

	if err := ctrl.DB.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request certificate!", nil)
	}

	ctrl.Notifier.LogActivity(userID, "CERTIFICATE_REQUESTED", "certificate", certificate.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", certificate)
}

// uniqueCertificateNumber generates a number no existing certificate
// holds. Full-UUID numbers never collide in practice; the lookup turns
// that into a guarantee the verification endpoint can rely on.
func (ctrl *CourseController) uniqueCertificateNumber() string {
	for {
		number := utils.GenerateCertificateNumber()
		var count int64
		ctrl.DB.Model(&models.Certificate{}).Where("certificate_number = ?", number).Count(&count)
		if count == 0 {
			return number
		}
	}
}

// issueCertificate stamps approval fields and the verification identity
func (ctrl *CourseController) issueCertificate(certificate *models.Certificate) {
	now := time.Now()
	certificate.Status = models.CertificateApproved
	certificate.ReviewedAt = &now
	certificate.CertificateNumber = ctrl.uniqueCertificateNumber()
	certificate.VerificationURL = config.AppConfig.CertificateBaseURL + "/" + certificate.CertificateNumber
}

// GetUserCertificates lists the requesting user's certificates
func (ctrl *CourseController) GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := ctrl.DB.Where("user_id = ?", userID).Order("requested_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		models.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course models.Course
		ctrl.DB.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{Certificate: cert, CourseTitle: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// ReviewCertificate approves or rejects a pending certificate. Assessors
// must be assigned to the course; admins bypass the assignment check.
// Both outcomes are terminal.
func (ctrl *CourseController) ReviewCertificate(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	certificateID := c.Locals("certificateID").(int)
	approve := c.Locals("reviewAction").(bool)

	reqData := new(struct {
		Reason string `json:"reason"`
	})
	c.BodyParser(reqData)

	var certificate models.Certificate
	if err := ctrl.DB.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status != models.CertificatePending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate has already been reviewed!", fiber.Map{
			"status": certificate.Status,
		})
	}

	if role != models.RoleAdmin {
		var assignment models.CourseAssessor
		if err := ctrl.DB.Where("course_id = ? AND user_id = ?", certificate.CourseID, reviewerID).First(&assignment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not assigned to assess this course!", nil)
		}
	}

	now := time.Now()
	certificate.ReviewedAt = &now
	certificate.ReviewedBy = &reviewerID

	if approve {
		certificate.Status = models.CertificateApproved
		certificate.CertificateNumber = ctrl.uniqueCertificateNumber()
		certificate.VerificationURL = config.AppConfig.CertificateBaseURL + "/" + certificate.CertificateNumber
	} else {
		certificate.Status = models.CertificateRejected
		certificate.RejectionReason = reqData.Reason
	}

	if err := ctrl.DB.Save(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review certificate!", nil)
	}

	// Best-effort: tell the learner
	var user models.User
	var course models.Course
	ctrl.DB.Where("id = ?", certificate.UserID).First(&user)
	ctrl.DB.Where("id = ?", certificate.CourseID).First(&course)

	if approve {
		go utils.SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	}
	ctrl.Notifier.Notify(certificate.UserID, models.NotifyCertificateReviewed, "Certificate "+certificate.Status,
		"Your certificate for "+course.Title+" was "+certificate.Status, map[string]interface{}{
			"certificate_id": certificate.ID,
			"status":         certificate.Status,
		})
	ctrl.Notifier.LogActivity(reviewerID, "CERTIFICATE_REVIEWED", "certificate", certificate.ID, map[string]interface{}{
		"status": certificate.Status,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate reviewed successfully!", certificate)
}

// VerifyCertificate is the public QR-verification lookup by number
func (ctrl *CourseController) VerifyCertificate(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	var certificate models.Certificate
	if err := ctrl.DB.Where("certificate_number = ? AND status = ?", number, models.CertificateApproved).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found or not valid!", nil)
	}

	var user models.User
	var course models.Course
	ctrl.DB.Where("id = ?", certificate.UserID).First(&user)
	ctrl.DB.Where("id = ?", certificate.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"holder":             user.Name,
		"course":             course.Title,
		"issued_at":          certificate.ReviewedAt,
	})
}
