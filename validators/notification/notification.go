package notificationValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// NotificationList validator middleware; applies paging defaults
func NotificationList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       int  `query:"page"`
			Limit      int  `query:"limit"`
			UnreadOnly bool `query:"unread_only"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 20
		}

		c.Locals("validatedNotificationList", reqData)
		return c.Next()
	}
}

// NotificationID validates the :id route parameter
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id parameter!", nil)
		}

		c.Locals("notificationID", id)
		return c.Next()
	}
}
