package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaarhub/internal/config"
	"github.com/example/bazaarhub/internal/handlers"
	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "handler-test-secret",
		AdminSecret:  "handler-admin-secret",
		TokenExpires: 24 * time.Hour,
	}
}

// newAuthApp wires the auth handler without a database; only request paths
// that fail before storage access are exercised here.
func newAuthApp() *fiber.App {
	cfg := testConfig()
	mailer := services.NewMailer(cfg, zerolog.Nop())
	h := handlers.NewAuthHandler(nil, cfg, mailer)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Post("/api/users/register", h.Register)
	app.Post("/api/users/admin/register", h.RegisterAdmin)
	app.Post("/api/users/verify-otp", h.VerifyOTP)
	app.Post("/api/users/login", h.Login)
	app.Post("/api/users/logout", h.Logout)
	return app
}

func postJSON(t *testing.T, app *fiber.App, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/users/register", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"email":"a@x.com","password":"pw123"}`},
		{"no email", `{"name":"Alice","password":"pw123"}`},
		{"no password", `{"name":"Alice","email":"a@x.com"}`},
		{"malformed email", `{"name":"Alice","email":"not-an-email","password":"pw123"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/users/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterAdminRejectsWrongSecret(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/users/admin/register",
		`{"name":"Root","email":"root@x.com","password":"pw123","adminSecret":"wrong"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid admin secret", envelope["message"])
}

func TestVerifyOTPRejectsMalformedBody(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/users/verify-otp", "{bad")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutAlwaysSucceedsAndClearsCookie(t *testing.T) {
	app := newAuthApp()

	resp := postJSON(t, app, "/api/users/logout", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["success"])

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "logout must reset the session cookie")
	assert.Empty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.Expires.Before(time.Now()), "cookie must be expired")
}
