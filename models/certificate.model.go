package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CertificatePending  = "PENDING"
	CertificateApproved = "APPROVED"
	CertificateRejected = "REJECTED"
)

// Certificate represents a learner's certificate record for a completed course.
// Exactly one row may ever exist per (user, course); a rejected certificate
// blocks any further request for that pair.
type Certificate struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CourseID     uint   `json:"course_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	EnrollmentID uint   `json:"enrollment_id" gorm:"index;not null"`
	Status       string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED

	// Assigned on approval; empty while PENDING, so the column index cannot
	// be unique. Uniqueness is enforced at assignment time instead.
	CertificateNumber string `json:"certificate_number" gorm:"index"`
	VerificationURL   string `json:"verification_url"`
	CertificateURL    string `json:"certificate_url"` // rendered PDF, produced externally
	QRCodeURL         string `json:"qr_code_url"`     // rendered QR image, produced externally

	RequestedAt     time.Time  `json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	RejectionReason string     `json:"rejection_reason"`
}

// CourseAssessor links an assessor to a course they may review certificates for
type CourseAssessor struct {
	gorm.Model
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_course_assessor;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_course_assessor;not null"`
}
