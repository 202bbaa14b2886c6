package courseController

import (
	"testing"
	"time"

	"lms/config"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificateAssignsDistinctNumbers(t *testing.T) {
	config.AppConfig = &config.Config{CertificateBaseURL: "http://localhost:3000/api/certificates/verify"}
	ctrl := newTestController(t)

	first := models.Certificate{UserID: 1, CourseID: 1, EnrollmentID: 1, RequestedAt: time.Now()}
	ctrl.issueCertificate(&first)
	require.NoError(t, ctrl.DB.Create(&first).Error)

	second := models.Certificate{UserID: 2, CourseID: 1, EnrollmentID: 2, RequestedAt: time.Now()}
	ctrl.issueCertificate(&second)
	require.NoError(t, ctrl.DB.Create(&second).Error)

	assert.Equal(t, models.CertificateApproved, first.Status)
	assert.NotEmpty(t, first.CertificateNumber)
	assert.NotEmpty(t, second.CertificateNumber)
	assert.NotEqual(t, first.CertificateNumber, second.CertificateNumber)
	assert.Equal(t, config.AppConfig.CertificateBaseURL+"/"+first.CertificateNumber, first.VerificationURL)
}
