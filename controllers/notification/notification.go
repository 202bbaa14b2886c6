package notificationController

import (
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController serves the in-app notification feed
type NotificationController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
}

func New(db *gorm.DB, notifier *utils.Notifier) *NotificationController {
	return &NotificationController{DB: db, Notifier: notifier}
}

// GetNotifications lists the user's notifications, newest first
func (ctrl *NotificationController) GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNotificationList").(*struct {
		Page       int  `query:"page"`
		Limit      int  `query:"limit"`
		UnreadOnly bool `query:"unread_only"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := ctrl.DB.Model(&models.Notification{}).Where("user_id = ? AND is_deleted = ?", userID, false)
	if reqData.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var notifications []models.Notification
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(reqData.Limit).Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var unread int64
	ctrl.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).Count(&unread)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
		"page":          reqData.Page,
		"limit":         reqData.Limit,
	})
}

// MarkRead marks one notification read and pushes the fresh unread count
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	if err := ctrl.DB.Where("id = ? AND user_id = ? AND is_deleted = ?", notificationID, userID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := ctrl.DB.Save(&notification).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
		}
		ctrl.Notifier.PushUnreadCount(userID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// MarkAllRead marks every unread notification read in one update
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result := ctrl.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Update("is_read", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	ctrl.Notifier.PushUnreadCount(userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", fiber.Map{
		"updated": result.RowsAffected,
	})
}
