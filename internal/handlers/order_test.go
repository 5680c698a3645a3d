package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/example/bazaarhub/internal/handlers"
	"github.com/example/bazaarhub/internal/services"
)

// newOrderApp wires the order handlers without session middleware or a
// database; only request paths that fail before storage access are
// exercised here.
func newOrderApp() *fiber.App {
	payments := services.NewPaymentService(nil, zerolog.Nop())
	orderHandler := handlers.NewOrderHandler(nil, payments)
	adminHandler := handlers.NewAdminHandler(nil)
	paymentHandler := handlers.NewPaymentHandler(nil, payments)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Post("/api/orders", orderHandler.PlaceOrder)
	app.Get("/api/orders", orderHandler.ListOrders)
	app.Get("/api/orders/admin", adminHandler.ListAllOrders)
	app.Put("/api/orders/:id", orderHandler.UpdateOrderStatus)
	app.Post("/api/payments/create-order", paymentHandler.CreatePaymentOrder)
	app.Post("/api/payments/verify", paymentHandler.VerifyPayment)
	return app
}

func TestPlaceOrderWithoutSession(t *testing.T) {
	app := newOrderApp()

	resp := postJSON(t, app, "/api/orders", `{"items":[],"totalPrice":10,"address":"somewhere"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePaymentOrderWithoutSession(t *testing.T) {
	app := newOrderApp()

	resp := postJSON(t, app, "/api/payments/create-order", `{"amount":1000}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateOrderStatusInvalidID(t *testing.T) {
	app := newOrderApp()

	req := httptest.NewRequest(http.MethodPut, "/api/orders/not-a-uuid", strings.NewReader(`{"status":"Shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid order ID format", envelope["message"])
}

func TestAdminOrderSearchInvalidID(t *testing.T) {
	app := newOrderApp()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/admin?search=zzz", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid order ID format", envelope["message"])
}
