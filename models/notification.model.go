package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotifyEnrollment          = "ENROLLMENT"
	NotifyCourseCompleted     = "COURSE_COMPLETED"
	NotifyCertificateReviewed = "CERTIFICATE_REVIEWED"
	NotifyPayment             = "PAYMENT"
	NotifyAssessorAssigned    = "ASSESSOR_ASSIGNED"
)

// Notification is a per-user message delivered in-app and over the push channel
type Notification struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      datatypes.JSON `json:"data"`
	IsRead    bool           `json:"is_read" gorm:"default:false"`
	IsDeleted bool           `gorm:"default:false"`
}

// ActivityLog records best-effort audit entries for significant actions
type ActivityLog struct {
	gorm.Model
	UserID   uint           `json:"user_id" gorm:"index"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID uint           `json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata"`
}
