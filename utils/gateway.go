package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"lms/config"

	"github.com/go-resty/resty/v2"
)

// GatewayOrderResponse represents the response from the payment gateway
// order-creation endpoint
type GatewayOrderResponse struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Checkout string `json:"checkout_url"`
}

// CreateGatewayOrder registers a payment order with the gateway and
// returns its order ID and hosted checkout URL.
func CreateGatewayOrder(reference string, amount float64, currency string) (*GatewayOrderResponse, error) {
	client := resty.New()

	var orderResp GatewayOrderResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"reference": reference,
			"amount":    amount,
			"currency":  currency,
		}).
		SetResult(&orderResp).
		Post(config.AppConfig.GatewayBaseURL + "/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %v", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("gateway error: %s", resp.String())
	}

	return &orderResp, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature the gateway
// attaches to webhook deliveries against the shared secret.
func VerifyWebhookSignature(payload []byte, signature string) bool {
	secret := config.AppConfig.GatewayWebhookSecret
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
