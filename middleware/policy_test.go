package middleware

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(models.RoleInstructor, CapManageCourses))
	assert.True(t, Can(models.RoleAdmin, CapManageCourses))
	assert.False(t, Can(models.RoleStudent, CapManageCourses))

	assert.True(t, Can(models.RoleAssessor, CapReviewCertificates))
	assert.True(t, Can(models.RoleAdmin, CapReviewCertificates))
	assert.False(t, Can(models.RoleInstructor, CapReviewCertificates))

	assert.True(t, Can(models.RoleAdmin, CapManageAssessors))
	assert.False(t, Can(models.RoleAssessor, CapManageAssessors))

	assert.True(t, Can(models.RoleAdmin, CapViewAdminDashboard))
	assert.False(t, Can(models.RoleStudent, CapViewAdminDashboard))
}

func TestCanUnknownCapability(t *testing.T) {
	assert.False(t, Can(models.RoleAdmin, "unknown:capability"))
	assert.False(t, Can("", CapManageCourses))
}
