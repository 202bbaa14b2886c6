package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCertificateNumber(t *testing.T) {
	prefix := fmt.Sprintf("CERT-%d-", time.Now().Year())

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := GenerateCertificateNumber()

		assert.True(t, strings.HasPrefix(number, prefix))
		// Full UUID: 32 hex characters, no truncation
		assert.Len(t, strings.TrimPrefix(number, prefix), 32)

		assert.False(t, seen[number], "duplicate certificate number %s", number)
		seen[number] = true
	}
}

func TestGeneratePaymentReference(t *testing.T) {
	ref := GeneratePaymentReference()
	assert.True(t, strings.HasPrefix(ref, "pay_"))
	assert.Len(t, strings.TrimPrefix(ref, "pay_"), 32)
	assert.NotEqual(t, ref, GeneratePaymentReference())
}
