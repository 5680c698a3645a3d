package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaarhub/internal/handlers"
	"github.com/example/bazaarhub/internal/middleware"
)

const webhookSecret = "webhook-test-secret"

func newWebhookApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Post("/webhook", middleware.WebhookAuthMiddleware(webhookSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestWebhookSignatureAccepted(t *testing.T) {
	app := newWebhookApp()
	body := `{"razorpay_order_id":"dummy_order_1"}`

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.WebhookSignatureHeader, middleware.SignWebhookBody(webhookSecret, []byte(body)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookEmptySecretNeverVerifies(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Post("/webhook", middleware.WebhookAuthMiddleware(""), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	// The empty-key HMAC is computable by anyone, so a matching signature
	// must still be rejected.
	body := `{"razorpay_order_id":"dummy_order_1"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.WebhookSignatureHeader, middleware.SignWebhookBody("", []byte(body)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookSignatureMissing(t *testing.T) {
	app := newWebhookApp()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookSignatureMismatch(t *testing.T) {
	app := newWebhookApp()
	body := `{"razorpay_order_id":"dummy_order_1"}`

	tests := []struct {
		name      string
		signature string
	}{
		{"wrong secret", middleware.SignWebhookBody("other-secret", []byte(body))},
		{"signature of different body", middleware.SignWebhookBody(webhookSecret, []byte(`{}`))},
		{"not base64", "!!not-a-signature!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(middleware.WebhookSignatureHeader, tt.signature)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
