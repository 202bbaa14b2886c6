package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"lms/config"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	config.AppConfig = &config.Config{GatewayWebhookSecret: "test-secret"}

	payload := []byte(`{"event":"payment.captured","data":{"reference":"pay_abc"}}`)

	assert.True(t, VerifyWebhookSignature(payload, sign("test-secret", payload)))
	assert.False(t, VerifyWebhookSignature(payload, sign("wrong-secret", payload)))
	assert.False(t, VerifyWebhookSignature([]byte(`{"tampered":true}`), sign("test-secret", payload)))
	assert.False(t, VerifyWebhookSignature(payload, ""))
}

func TestVerifyWebhookSignatureNoSecret(t *testing.T) {
	config.AppConfig = &config.Config{GatewayWebhookSecret: ""}

	payload := []byte(`{}`)
	assert.False(t, VerifyWebhookSignature(payload, sign("", payload)))
}
