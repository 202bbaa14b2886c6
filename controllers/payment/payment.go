package paymentController

import (
	"encoding/json"
	"log"
	"time"

	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentController handles payment intents and the gateway webhook
type PaymentController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
}

func New(db *gorm.DB, notifier *utils.Notifier) *PaymentController {
	return &PaymentController{DB: db, Notifier: notifier}
}

// CreateIntent opens a payment intent for a paid course and registers
// the order with the gateway
func (ctrl *PaymentController) CreateIntent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedIntent").(*struct {
		CourseID uint   `json:"course_id"`
		Currency string `json:"currency"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := ctrl.DB.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	if course.Type == models.CourseTypeFree {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free. Enroll directly!", nil)
	}

	var enrollment models.Enrollment
	if err := ctrl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&enrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	currency := reqData.Currency
	if currency == "" {
		currency = "USD"
	}

	intent := models.PaymentIntent{
		UserID:    userID,
		CourseID:  course.ID,
		Amount:    course.Price,
		Currency:  currency,
		Status:    models.PaymentPending,
		Reference: utils.GeneratePaymentReference(),
	}

	order, err := utils.CreateGatewayOrder(intent.Reference, intent.Amount, intent.Currency)
	if err != nil {
		log.Printf("Error creating gateway order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway is unavailable. Try again later!", nil)
	}
	intent.GatewayOrderID = order.OrderID

	if err := ctrl.DB.Create(&intent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment intent!", nil)
	}

	ctrl.Notifier.LogActivity(userID, "PAYMENT_INTENT_CREATED", "payment", intent.ID, map[string]interface{}{
		"course_id": course.ID,
		"amount":    intent.Amount,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment intent created!", fiber.Map{
		"intent":       intent,
		"checkout_url": order.Checkout,
	})
}

// webhookEvent is the gateway's delivery envelope
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		PaymentID string `json:"payment_id"`
		Method    string `json:"method"`
	} `json:"data"`
}

// Webhook consumes gateway events. Signature-verified; enrollment
// creation and intent settlement happen in one transaction, and replays
// of an already-settled intent are acknowledged without side effects.
func (ctrl *PaymentController) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Gateway-Signature")

	if !utils.VerifyWebhookSignature(body, signature) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	var intent models.PaymentIntent
	if err := ctrl.DB.Where("reference = ? AND is_deleted = ?", event.Data.Reference, false).First(&intent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown payment reference!", nil)
	}

	switch event.Event {
	case "payment.captured":
		// Replay of a settled intent is a no-op
		if intent.Status == models.PaymentCompleted {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already processed.", nil)
		}

		if err := ctrl.settlePayment(&intent, event.Data.PaymentID, body); err != nil {
			log.Printf("Error settling payment %s: %v", intent.Reference, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
		}

		ctrl.notifyEnrollment(intent)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment processed and enrollment created.", nil)

	case "payment.failed":
		if intent.Status == models.PaymentPending {
			intent.Status = models.PaymentFailed
			intent.GatewayResponse = datatypes.JSON(body)
			ctrl.DB.Save(&intent)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment failure recorded.", nil)

	default:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}
}

// settlePayment marks the intent completed and creates the enrollment.
// All-or-nothing: a failure partway leaves neither.
func (ctrl *PaymentController) settlePayment(intent *models.PaymentIntent, paymentID string, rawEvent []byte) error {
	var course models.Course
	if err := ctrl.DB.Where("id = ?", intent.CourseID).First(&course).Error; err != nil {
		return err
	}

	return ctrl.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		intent.Status = models.PaymentCompleted
		intent.GatewayPaymentID = paymentID
		intent.GatewayResponse = datatypes.JSON(rawEvent)
		intent.PaidAt = &now

		if err := tx.Save(intent).Error; err != nil {
			return err
		}

		// The learner may have enrolled through the direct path already
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", intent.UserID, intent.CourseID, false).First(&existing).Error; err == nil {
			return nil
		}

		enrollment := models.Enrollment{
			UserID:        intent.UserID,
			CourseID:      intent.CourseID,
			Status:        models.EnrollmentActive,
			CourseVersion: course.Version,
		}
		return tx.Create(&enrollment).Error
	})
}

func (ctrl *PaymentController) notifyEnrollment(intent models.PaymentIntent) {
	var user models.User
	var course models.Course
	ctrl.DB.Where("id = ?", intent.UserID).First(&user)
	ctrl.DB.Where("id = ?", intent.CourseID).First(&course)

	go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	ctrl.Notifier.Notify(intent.UserID, models.NotifyPayment, "Payment received",
		"Your payment for "+course.Title+" was received. You are now enrolled.", map[string]interface{}{
			"course_id": course.ID,
			"amount":    intent.Amount,
		})
	ctrl.Notifier.LogActivity(intent.UserID, "PAYMENT_COMPLETED", "payment", intent.ID, nil)
}

// GetPayments lists the user's payment history
func (ctrl *PaymentController) GetPayments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var intents []models.PaymentIntent
	if err := ctrl.DB.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&intents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": intents,
		"total":    len(intents),
	})
}
