package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Capability names for role-gated actions. Controllers still perform
// ownership checks (e.g. instructor owns the course) on top of these.
const (
	CapManageCourses      = "courses:manage"
	CapReviewCertificates = "certificates:review"
	CapManageAssessors    = "assessors:manage"
	CapViewAdminDashboard = "dashboard:view"
)

// policies maps a capability to the roles allowed to perform it
var policies = map[string][]string{
	CapManageCourses:      {models.RoleInstructor, models.RoleAdmin},
	CapReviewCertificates: {models.RoleAssessor, models.RoleAdmin},
	CapManageAssessors:    {models.RoleAdmin},
	CapViewAdminDashboard: {models.RoleAdmin},
}

// Can reports whether a role holds a capability
func Can(role, capability string) bool {
	for _, allowed := range policies[capability] {
		if allowed == role {
			return true
		}
	}
	return false
}

// RequireCapability returns a middleware enforcing a capability from the
// policy table instead of ad hoc role comparisons in every handler.
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}

		if !Can(role, capability) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
