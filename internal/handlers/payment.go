package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/services"
)

// PaymentHandler manages the dummy payment-initiation flow.
type PaymentHandler struct {
	db       *gorm.DB
	payments *services.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(db *gorm.DB, payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{db: db, payments: payments}
}

type createPaymentOrderRequest struct {
	Amount  int64              `json:"amount"`
	Address string             `json:"address"`
	Items   []orderItemRequest `json:"items"`
}

// CreatePaymentOrder fabricates a gateway order descriptor and persists a
// companion Pending order. The amount is in minor currency units.
func (h *PaymentHandler) CreatePaymentOrder(c *fiber.Ctx) error {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	userID, err := claims.Identity()
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	var req createPaymentOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	gatewayOrder := h.payments.CreateGatewayOrder(req.Amount)

	address := req.Address
	if address == "" {
		address = "default address"
	}

	order := models.Order{
		UserID:           userID,
		TotalPrice:       float64(req.Amount) / 100,
		Address:          address,
		PaymentRequestID: gatewayOrder.ID,
		Status:           models.StatusPending,
		Items:            buildOrderItems(h.db, req.Items),
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   gatewayOrder,
		"message": "Payment initiated (dummy)",
	})
}

type verifyPaymentRequest struct {
	OrderID string `json:"orderId"`
}

// VerifyPayment confirms the dummy payment for the order matching the
// external payment-request id. The call reports success even when no order
// matches, mirroring the gateway stub this replaces.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := h.payments.ConfirmPayment(req.OrderID, ""); err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment verified successfully (dummy)",
	})
}
