package utils

import (
	"log"
	"time"

	"lms/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// paymentIntentTTL is how long a PENDING intent stays claimable
const paymentIntentTTL = 24 * time.Hour

// StartPaymentSweep schedules the hourly job that expires stale payment
// intents so abandoned checkouts don't linger as PENDING forever.
func StartPaymentSweep(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		sweepExpiredIntents(db)
	})
	if err != nil {
		log.Printf("Error scheduling payment sweep: %v", err)
		return c
	}

	c.Start()
	log.Println("Payment intent sweep scheduled (hourly).")
	return c
}

func sweepExpiredIntents(db *gorm.DB) {
	cutoff := time.Now().Add(-paymentIntentTTL)

	result := db.Model(&models.PaymentIntent{}).
		Where("status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Update("status", models.PaymentExpired)

	if result.Error != nil {
		log.Printf("[PAYMENT-SWEEP] Error expiring intents: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[PAYMENT-SWEEP] Expired %d stale payment intents", result.RowsAffected)
	}
}
