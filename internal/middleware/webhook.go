package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
)

// WebhookSignatureHeader carries the HMAC-SHA256 signature of the raw body.
const WebhookSignatureHeader = "X-Webhook-Signature"

// WebhookAuthMiddleware verifies the gateway signature on webhook deliveries.
// The endpoint stays unauthenticated in the session sense, but a caller must
// prove possession of the shared webhook secret. An empty secret never
// verifies: anyone can compute the empty-key HMAC.
func WebhookAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid webhook signature")
		}

		signature := c.Get(WebhookSignatureHeader)
		if signature == "" || !verifySignature(secret, c.Body(), signature) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid webhook signature")
		}
		return c.Next()
	}
}

// SignWebhookBody computes the signature a legitimate gateway would attach.
func SignWebhookBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func verifySignature(secret string, body []byte, signature string) bool {
	expected := SignWebhookBody(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
