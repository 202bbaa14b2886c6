package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCertificateNumber builds a certificate number carrying the full
// UUID, e.g. CERT-2026-3F2A9C7B1D4E8A60B2C15F7E9D0A4C3B.
func GenerateCertificateNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("CERT-%d-%s", time.Now().Year(), id)
}

// GeneratePaymentReference builds the identifier we hand to the payment
// gateway for one intent.
func GeneratePaymentReference() string {
	return "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
