package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentExpired   = "EXPIRED"
)

// PaymentIntent represents one attempt to pay for a paid course.
// Reference is our identifier handed to the gateway; GatewayOrderID is theirs.
type PaymentIntent struct {
	gorm.Model
	UserID   uint    `json:"user_id" gorm:"index;not null"`
	CourseID uint    `json:"course_id" gorm:"index;not null"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" gorm:"default:'USD'"`
	Status   string  `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, FAILED, EXPIRED

	Reference        string         `json:"reference" gorm:"uniqueIndex;not null"`
	GatewayOrderID   string         `json:"gateway_order_id" gorm:"index"`
	GatewayPaymentID string         `json:"gateway_payment_id"`
	GatewayResponse  datatypes.JSON `json:"gateway_response"`
	PaidAt           *time.Time     `json:"paid_at"`
	IsDeleted        bool           `gorm:"default:false"`
}
